package bot

import (
	"fmt"

	"renthour-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// NotifyAdmin sends the order to the admin chat with status buttons.
func (b *Bot) NotifyAdmin(order storage.Order) {
	if b.cfg.Admin.ChatID == 0 {
		return
	}

	msg := tgbotapi.NewMessage(b.cfg.Admin.ChatID, FormatOrderNotification(order))
	msg.ReplyMarkup = createOrderStatusKeyboard(order.ID)

	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("Failed to notify admin",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}

// NotifyNewOrderToChannel posts a short note to the orders channel.
func (b *Bot) NotifyNewOrderToChannel(order storage.Order) {
	if b.cfg.Admin.ChannelID == 0 {
		return
	}

	duration := fmt.Sprintf("%s ч.", formatHours(order.Hours))
	if order.Night {
		duration = "ночь"
	}

	text := fmt.Sprintf("📦 Аренда #%d: %s, %s", order.ID, order.ListingTitle, duration)
	msg := tgbotapi.NewMessage(b.cfg.Admin.ChannelID, text)

	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("Failed to notify channel",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}

func createOrderStatusKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"▶️ Активен",
				fmt.Sprintf("status:%d:%s", orderID, storage.OrderStatusActive),
			),
			tgbotapi.NewInlineKeyboardButtonData(
				"✅ Завершен",
				fmt.Sprintf("status:%d:%s", orderID, storage.OrderStatusCompleted),
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"❌ Отменен",
				fmt.Sprintf("status:%d:%s", orderID, storage.OrderStatusCancelled),
			),
		),
	)
}
