package bot

import (
	"context"

	"renthour-bot/internal/billing"
	"renthour-bot/internal/pricing"
	"renthour-bot/pkg/currency"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string, args []string) {
	switch command {
	case "start":
		b.handleStart(ctx, chatID)
	case "help":
		b.handleHelp(ctx, chatID)
	case "prices":
		b.handlePrices(ctx, chatID)
	case "balance":
		b.handleBalance(ctx, chatID)
	case "setprices", "topup", "quote", "listings", "stats", "export", "status":
		b.handleAdminCommand(ctx, chatID, command, args)
	default:
		b.handleUnknownCommand(ctx, chatID)
	}
}

// handleMenuButton routes reply-keyboard buttons that work from any
// step. Returns false when the text is not a menu button.
func (b *Bot) handleMenuButton(ctx context.Context, chatID int64, text string) bool {
	switch text {
	case ButtonPrices:
		b.handlePrices(ctx, chatID)
	case ButtonRent:
		b.handleRent(ctx, chatID)
	case ButtonBalance:
		b.handleBalance(ctx, chatID)
	case ButtonHelp:
		b.handleHelp(ctx, chatID)
	case ButtonCancel:
		b.handleCancel(ctx, chatID)
	default:
		return false
	}
	return true
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	if err := b.state.Clear(ctx, chatID); err != nil {
		b.logger.Warn("Failed to clear state on start",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	text := `Привет! 👋

Здесь можно арендовать аккаунт на несколько часов.
Выберите действие в меню ниже 👇`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = b.createMainMenuKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleHelp(ctx context.Context, chatID int64) {
	helpText := `Доступные команды:
	/start - Начать работу с ботом
	/prices - Показать прайс
	/balance - Проверить баланс
	/help - Показать эту справку

	Если у вас возникли проблемы, свяжитесь с поддержкой.`
	b.sendMessage(tgbotapi.NewMessage(chatID, helpText))
}

func (b *Bot) handleDefault(ctx context.Context, chatID int64) {
	b.sendError(chatID, "Я не понимаю эту команду. Пожалуйста, используйте меню.")
}

func (b *Bot) handleUnknownCommand(ctx context.Context, chatID int64) {
	b.sendError(chatID, "Неизвестная команда. Пожалуйста, используйте /start для начала работы.")
}

// handlePrices renders the price list of every active listing.
func (b *Bot) handlePrices(ctx context.Context, chatID int64) {
	listings, err := b.storage.GetActiveListings(ctx)
	if err != nil {
		b.logger.Error("Failed to get listings",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Не удалось загрузить прайс. Попробуйте позже.")
		return
	}

	if len(listings) == 0 {
		b.sendError(chatID, "Сейчас нет доступных аккаунтов.")
		return
	}

	for _, listing := range listings {
		table, err := listing.PriceTable()
		if err != nil {
			b.logger.Error("Failed to decode price table",
				zap.String("listing_id", listing.ID),
				zap.Error(err))
			continue
		}

		msg := tgbotapi.NewMessage(chatID, FormatPriceRange(listing.Title, pricing.BuildPriceRange(table)))
		msg.ParseMode = "Markdown"
		b.sendMessage(msg)
	}
}

// handleBalance shows the user's prepaid balance. When a rental is
// mid-flow, the pending price is used as the required amount so the
// user sees any shortfall right away.
func (b *Bot) handleBalance(ctx context.Context, chatID int64) {
	balance, err := b.storage.GetBalance(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get balance",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Не удалось получить баланс. Попробуйте позже.")
		return
	}

	var required *float64
	if state, err := b.state.Get(ctx, chatID); err == nil && state.Price > 0 {
		required = &state.Price
	}

	status := billing.FormatBalanceStatus(balance, required, currency.Format)

	text := "💳 Ваш баланс: " + status.Text
	if status.Status == billing.StatusInsufficient && status.Difference != nil {
		text += "\n⚠️ Для текущей аренды не хватает " + *status.Difference
	}

	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64) {
	if err := b.state.Clear(ctx, chatID); err != nil {
		b.logger.Error("Failed to clear state on cancel",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	msg := tgbotapi.NewMessage(chatID, "❌ Действие отменено.")
	msg.ReplyMarkup = b.createMainMenuKeyboard()
	b.sendMessage(msg)
}
