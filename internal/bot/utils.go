package bot

import (
	"fmt"
	"strconv"
	"strings"

	"renthour-bot/internal/pricing"
	"renthour-bot/internal/storage"
	"renthour-bot/pkg/currency"
)

// MaxRentalHours caps custom durations at a week.
const MaxRentalHours = 168

// ParseHours parses a user-entered duration. Accepts a comma as the
// decimal separator ("4,5").
func ParseHours(text string) (float64, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))

	hours, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hours: %w", err)
	}
	if hours <= 0 {
		return 0, fmt.Errorf("hours must be positive, got %v", hours)
	}
	if hours > MaxRentalHours {
		return 0, fmt.Errorf("hours above limit: %v", hours)
	}
	return hours, nil
}

// FormatPriceRange renders a listing's price list for the chat.
func FormatPriceRange(title string, rng pricing.PriceRange) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📋 *%s*\n\n", title))
	for _, entry := range rng.Standard {
		if entry.Price > 0 {
			sb.WriteString(fmt.Sprintf("%d ч. — %s (%s/час)\n",
				entry.Hours,
				currency.Format(entry.Price),
				currency.Format(entry.PricePerHour)))
		} else {
			sb.WriteString(fmt.Sprintf("%d ч. — по почасовой ставке\n", entry.Hours))
		}
	}

	sb.WriteString(fmt.Sprintf("\n%s\n", rng.Custom.Description))
	sb.WriteString("От 12 ч. — скидка 5%, от 24 ч. — скидка 10%\n")

	if rng.Night != nil {
		sb.WriteString(fmt.Sprintf("🌙 Ночь — %s\n", currency.Format(rng.Night.Price)))
	}

	return sb.String()
}

// FormatQuote renders the confirmation message for a priced rental.
func FormatQuote(state UserState) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🧾 *%s*\n", state.ListingTitle))
	if state.Night {
		sb.WriteString("🌙 Ночная аренда\n")
	} else {
		sb.WriteString(fmt.Sprintf("🕒 Длительность: %s ч.\n", formatHours(state.Hours)))
	}
	sb.WriteString(fmt.Sprintf("💵 К оплате: %s\n", currency.Format(state.Price)))

	switch {
	case state.Savings > 0:
		sb.WriteString(fmt.Sprintf("🎉 Ваша выгода: %s (скидка %d%%, без скидки %s)\n",
			currency.Format(state.Savings),
			state.DiscountPercent,
			currency.Format(state.OriginalPrice)))
	case state.Savings < 0:
		// A fixed tier priced above the hourly formula; show it, do not
		// hide it.
		sb.WriteString(fmt.Sprintf("⚠️ Тариф дороже почасовой ставки на %s\n",
			currency.Format(-state.Savings)))
	}

	sb.WriteString("\nНажмите \"✅ Подтвердить\" для оформления аренды")
	return sb.String()
}

// FormatQuoteSummary renders the short order summary shown to the user
// after payment.
func FormatQuoteSummary(order storage.Order) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Заказ #%d\n", order.ID))
	sb.WriteString(fmt.Sprintf("Аккаунт: %s\n", order.ListingTitle))
	if order.Night {
		sb.WriteString("Длительность: ночь\n")
	} else {
		sb.WriteString(fmt.Sprintf("Длительность: %s ч.\n", formatHours(order.Hours)))
	}
	sb.WriteString(fmt.Sprintf("Оплачено: %s", currency.Format(order.Price)))

	return sb.String()
}

// FormatOrderNotification renders an order summary for admins.
func FormatOrderNotification(order storage.Order) string {
	duration := fmt.Sprintf("%s ч.", formatHours(order.Hours))
	if order.Night {
		duration = "ночь"
	}

	return fmt.Sprintf(
		"📦 Новая аренда #%d\n\n"+
			"Аккаунт: %s\n"+
			"Длительность: %s\n"+
			"Цена: %s\n"+
			"Без скидки: %s\n"+
			"Выгода: %s\n"+
			"──────────────────\n"+
			"Пользователь: %d\n"+
			"Статус: %s\n"+
			"Дата: %s",
		order.ID,
		order.ListingTitle,
		duration,
		currency.Format(order.Price),
		currency.Format(order.OriginalPrice),
		currency.Format(order.Savings),
		order.UserID,
		order.Status,
		order.CreatedAt.Format("02.01.2006 15:04"),
	)
}

// formatHours prints whole hours without a trailing ".0".
func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
