package bot

import (
	"context"

	"renthour-bot/internal/pricing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Night bookings are recorded with a fixed duration: the account is
// handed out for the 12 night hours regardless of the flat rate.
const nightHours = 12

// handleRent starts the rental flow with the listing picker.
func (b *Bot) handleRent(ctx context.Context, chatID int64) {
	listings, err := b.storage.GetActiveListings(ctx)
	if err != nil {
		b.logger.Error("Failed to get listings",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Не удалось загрузить аккаунты. Попробуйте позже.")
		return
	}

	if len(listings) == 0 {
		b.sendError(chatID, "Сейчас нет доступных аккаунтов.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Выберите аккаунт:")
	msg.ReplyMarkup = b.createListingsKeyboard(listings)
	b.sendMessage(msg)

	if err := b.state.SetStep(ctx, chatID, StepListingSelection); err != nil {
		b.logger.Error("Failed to set listing selection state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// handleListingText is reached when the user types instead of tapping
// an inline button on the listing step.
func (b *Bot) handleListingText(ctx context.Context, chatID int64, text string) {
	b.sendError(chatID, "Пожалуйста, выберите аккаунт кнопкой из списка.")
}

// handleListingSelection stores the chosen listing and asks for the
// duration.
func (b *Bot) handleListingSelection(ctx context.Context, chatID int64, listingID string) {
	listing, err := b.storage.GetListingByID(ctx, listingID)
	if err != nil {
		b.logger.Error("Failed to get listing",
			zap.Int64("chat_id", chatID),
			zap.String("listing_id", listingID),
			zap.Error(err))
		b.sendError(chatID, "Аккаунт не найден. Начните заново.")
		return
	}

	if err := b.state.SetListing(ctx, chatID, listing.ID, listing.Title); err != nil {
		b.logger.Error("Failed to set listing",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Ошибка при сохранении выбора")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "На сколько часов нужен аккаунт?")
	msg.ReplyMarkup = b.createDurationKeyboard()
	b.sendMessage(msg)

	if err := b.state.SetStep(ctx, chatID, StepDurationSelection); err != nil {
		b.logger.Error("Failed to set duration selection state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func (b *Bot) handleDurationSelection(ctx context.Context, chatID int64, text string) {
	switch text {
	case Button3Hours:
		b.quoteAndConfirm(ctx, chatID, 3, false)
	case Button6Hours:
		b.quoteAndConfirm(ctx, chatID, 6, false)
	case Button12Hours:
		b.quoteAndConfirm(ctx, chatID, 12, false)
	case Button24Hours:
		b.quoteAndConfirm(ctx, chatID, 24, false)
	case ButtonNight:
		b.quoteAndConfirm(ctx, chatID, nightHours, true)
	case ButtonCustomHours:
		msg := tgbotapi.NewMessage(chatID, "Введите длительность в часах (например: 5 или 4,5)")
		msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(ButtonCancel),
			),
		)
		b.sendMessage(msg)
		if err := b.state.SetStep(ctx, chatID, StepCustomHours); err != nil {
			b.logger.Error("Failed to set custom hours state",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	default:
		b.sendError(chatID, "Пожалуйста, выберите длительность кнопкой.")
	}
}

func (b *Bot) handleCustomHours(ctx context.Context, chatID int64, text string) {
	hours, err := ParseHours(text)
	if err != nil {
		b.sendError(chatID, "Некорректная длительность. Введите число часов от 1 до 168, например: 5 или 4,5")
		return
	}

	b.quoteAndConfirm(ctx, chatID, hours, false)
}

// quoteAndConfirm resolves the price for the chosen duration, stores
// the quote in the chat state and asks for confirmation.
func (b *Bot) quoteAndConfirm(ctx context.Context, chatID int64, hours float64, night bool) {
	state, err := b.state.Get(ctx, chatID)
	if err != nil || state.ListingID == "" {
		b.sendError(chatID, "Сессия устарела. Начните заново через меню.")
		return
	}

	table, err := b.storage.GetPriceTable(ctx, state.ListingID)
	if err != nil {
		b.logger.Error("Failed to get price table",
			zap.Int64("chat_id", chatID),
			zap.String("listing_id", state.ListingID),
			zap.Error(err))
		b.sendError(chatID, "Не удалось рассчитать цену. Попробуйте позже.")
		return
	}

	var price float64
	var savings pricing.Savings
	if night {
		price = pricing.ResolveNightPrice(table, hours)
		// Flat night rate: the hourly baseline comparison is not
		// meaningful, leave savings zeroed.
		savings = pricing.Savings{FinalPrice: price}
	} else {
		price = pricing.ResolvePrice(table, hours, nil)
		savings = pricing.ComputeSavings(table, hours)
	}

	if err := b.state.SetQuote(ctx, chatID, hours, night, price,
		savings.OriginalPrice, savings.Savings, savings.DiscountPercent); err != nil {
		b.logger.Error("Failed to save quote",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Ошибка при сохранении расчета")
		return
	}

	quoted, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.sendError(chatID, "Ошибка при сохранении расчета")
		return
	}

	msg := tgbotapi.NewMessage(chatID, FormatQuote(quoted))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = b.createConfirmationKeyboard()
	b.sendMessage(msg)

	if err := b.state.SetStep(ctx, chatID, StepConfirmation); err != nil {
		b.logger.Error("Failed to set confirmation state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func (b *Bot) handleConfirmation(ctx context.Context, chatID int64, text string) {
	if text != ButtonConfirm {
		b.sendError(chatID, "Нажмите \"✅ Подтвердить\" для оформления или \"Отмена\" для выхода.")
		return
	}

	b.createOrder(ctx, chatID)
}
