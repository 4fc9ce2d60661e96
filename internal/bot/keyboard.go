package bot

import (
	"fmt"

	"renthour-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BOT KEYBOARDS

// Main menu buttons.
const (
	ButtonPrices  = "💰 Прайс"
	ButtonRent    = "🕒 Арендовать"
	ButtonBalance = "💳 Баланс"
	ButtonHelp    = "ℹ️ Помощь"
	ButtonCancel  = "Отмена"
	ButtonConfirm = "✅ Подтвердить"
)

// Duration buttons of the rental flow.
const (
	Button3Hours      = "3 часа"
	Button6Hours      = "6 часов"
	Button12Hours     = "12 часов"
	Button24Hours     = "24 часа"
	ButtonNight       = "🌙 Ночь"
	ButtonCustomHours = "Другая длительность"
)

func (b *Bot) createMainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonPrices),
			tgbotapi.NewKeyboardButton(ButtonRent),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonBalance),
			tgbotapi.NewKeyboardButton(ButtonHelp),
		),
	)
}

func (b *Bot) createDurationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(Button3Hours),
			tgbotapi.NewKeyboardButton(Button6Hours),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(Button12Hours),
			tgbotapi.NewKeyboardButton(Button24Hours),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonNight),
			tgbotapi.NewKeyboardButton(ButtonCustomHours),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonCancel),
		),
	)
}

func (b *Bot) createConfirmationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonConfirm),
			tgbotapi.NewKeyboardButton(ButtonCancel),
		),
	)
}

func (b *Bot) createListingsKeyboard(listings []storage.Listing) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(listings))
	for _, listing := range listings {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				listing.Title,
				fmt.Sprintf("listing:%s", listing.ID),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
