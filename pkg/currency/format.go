package currency

// RUBLE PRICE FORMATTING

import (
	"fmt"
	"strings"
)

// Format renders an amount as rubles with kopecks and thousands
// separators: 1234567.8 → "1 234 567.80 ₽".
func Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	whole, frac := s[:len(s)-3], s[len(s)-2:]

	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)

	return fmt.Sprintf("%s%s.%s ₽", sign, strings.Join(groups, " "), frac)
}
