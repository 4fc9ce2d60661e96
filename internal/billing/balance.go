package billing

import "renthour-bot/internal/pricing"

// Balance status values.
const (
	StatusSufficient   = "sufficient"
	StatusInsufficient = "insufficient"
)

// FormatFunc renders a monetary amount for display. The bot injects
// pkg/currency.Format; tests inject their own.
type FormatFunc func(amount float64) string

// BalanceStatus is the display-ready result of a balance check.
// Difference is nil unless the balance falls short of the required
// amount, in which case it carries the formatted shortfall.
type BalanceStatus struct {
	Text       string  `json:"text"`
	Status     string  `json:"status"`
	Difference *string `json:"difference"`
}

// HasSufficientBalance reports whether balance covers amount. Any NaN
// operand compares false, so corrupt numeric input reads as
// insufficient rather than as an error.
func HasSufficientBalance(balance, amount float64) bool {
	return balance >= amount
}

// RemainingBalance returns balance minus amount, rounded to kopecks.
// It goes negative on overdraft and is never clamped.
func RemainingBalance(balance, amount float64) float64 {
	return pricing.Round2(balance - amount)
}

// FormatBalanceStatus renders a balance against an optional required
// amount. The package never mutates balances; it only derives display
// values from what the caller's ledger passed in.
func FormatBalanceStatus(balance float64, required *float64, format FormatFunc) BalanceStatus {
	if required != nil && balance < *required {
		shortfall := format(*required - balance)
		return BalanceStatus{
			Text:       format(balance),
			Status:     StatusInsufficient,
			Difference: &shortfall,
		}
	}
	return BalanceStatus{
		Text:   format(balance),
		Status: StatusSufficient,
	}
}
