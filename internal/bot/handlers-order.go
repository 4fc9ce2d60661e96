package bot

import (
	"context"
	"errors"
	"time"

	"renthour-bot/internal/storage"
	"renthour-bot/pkg/api"
	"renthour-bot/pkg/currency"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Rate limit for order creation.
const (
	orderRateLimit  = 5
	orderRateWindow = time.Hour
)

// createOrder charges the quote stored in the chat state and hands the
// account over via the account service.
func (b *Bot) createOrder(ctx context.Context, chatID int64) {
	state, err := b.state.Get(ctx, chatID)
	if err != nil || state.ListingID == "" || state.Price <= 0 {
		b.sendError(chatID, "Сессия устарела. Начните заново через меню.")
		return
	}

	limited, err := b.storage.CheckRateLimit(ctx, chatID, "create_order", orderRateLimit, orderRateWindow)
	if err != nil {
		b.logger.Error("Failed to check rate limit",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	if limited {
		b.sendError(chatID, "Слишком много заказов. Подождите немного и попробуйте снова.")
		return
	}

	// The account service hands the account over after payment, so an
	// unauthorized user must not be charged. An unreachable service is
	// not a reason to block the sale.
	if session, err := b.account.GetSession(ctx, chatID); err != nil {
		b.logger.Warn("Failed to check session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	} else if !session.Authorized {
		b.sendError(chatID, "Сначала авторизуйтесь в сервисе аккаунтов, затем подтвердите аренду еще раз.")
		return
	}

	order := storage.Order{
		UserID:        chatID,
		ListingID:     state.ListingID,
		ListingTitle:  state.ListingTitle,
		Hours:         state.Hours,
		Night:         state.Night,
		Price:         state.Price,
		OriginalPrice: state.OriginalPrice,
		Savings:       state.Savings,
		Status:        storage.OrderStatusPaid,
		CreatedAt:     time.Now(),
	}

	orderID, err := b.storage.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, storage.ErrInsufficientBalance) {
			b.notifyInsufficientBalance(ctx, chatID, state.Price)
			return
		}
		b.logger.Error("Failed to create order",
			zap.Int64("chat_id", chatID),
			zap.String("listing_id", state.ListingID),
			zap.Error(err))
		b.sendError(chatID, "Не удалось оформить аренду. Попробуйте позже.")
		return
	}
	order.ID = orderID

	if err := b.account.ActivateRental(ctx, api.RentalRequest{
		OrderID:   orderID,
		UserID:    chatID,
		ListingID: state.ListingID,
		Hours:     state.Hours,
		Night:     state.Night,
	}); err != nil {
		// Payment went through; the admin activates the account by hand.
		b.logger.Error("Failed to activate rental",
			zap.Int64("order_id", orderID),
			zap.Error(err))
	} else {
		if err := b.storage.UpdateOrderStatus(ctx, orderID, storage.OrderStatusActive); err != nil {
			b.logger.Error("Failed to update order status",
				zap.Int64("order_id", orderID),
				zap.Error(err))
		} else {
			order.Status = storage.OrderStatusActive
		}
	}

	if err := b.state.Clear(ctx, chatID); err != nil {
		b.logger.Warn("Failed to clear state after order",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	b.logger.Info("Order created",
		zap.Int64("order_id", orderID),
		zap.Int64("user_id", chatID),
		zap.String("listing_id", order.ListingID),
		zap.Float64("price", order.Price))

	msg := tgbotapi.NewMessage(chatID, b.formatOrderConfirmation(order))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = b.createMainMenuKeyboard()
	b.sendMessage(msg)

	go b.NotifyAdmin(order)
	go b.NotifyNewOrderToChannel(order)
}

// notifyInsufficientBalance tells the user how much is missing.
func (b *Bot) notifyInsufficientBalance(ctx context.Context, chatID int64, price float64) {
	text := "Недостаточно средств на балансе."

	if balance, err := b.storage.GetBalance(ctx, chatID); err == nil {
		shortfall := price - balance
		text += "\nНа балансе " + currency.Format(balance) +
			", не хватает " + currency.Format(shortfall) + "."
	}

	text += "\nПополните баланс и подтвердите аренду еще раз."
	b.sendError(chatID, text)
}

func (b *Bot) formatOrderConfirmation(order storage.Order) string {
	text := "✅ *Аренда оформлена!*\n\n" + FormatQuoteSummary(order)

	if order.Status == storage.OrderStatusActive {
		text += "\n\nАккаунт уже активирован, данные придут отдельным сообщением."
	} else {
		text += "\n\nАккаунт будет активирован в течение нескольких минут."
	}
	return text
}
