package pricing

import "math"

// Savings describes how the actual price for a duration relates to the
// plain hourly formula price for the same duration.
type Savings struct {
	Savings         float64 `json:"savings"`
	DiscountPercent int     `json:"discount_percent"`
	OriginalPrice   float64 `json:"original_price"`
	FinalPrice      float64 `json:"final_price"`
}

// DiscountPercent returns the discount between an original and a
// discounted price as a whole percent. Degenerate inputs (non-positive
// original, or a discounted price at or above the original) yield 0 —
// never a negative "discount".
func DiscountPercent(original, discounted float64) int {
	if original <= 0 || discounted >= original {
		return 0
	}
	return int(math.Round((original - discounted) / original * 100))
}

// ComputeSavings compares the resolved price for a duration against the
// undiscounted hourly baseline (HourlyRate * hours). The baseline is
// always the formula price, even when a fixed tier applies, so tier
// pricing shows up as savings against hourly rental.
//
// Savings is not clamped: a fixed tier priced above the formula yields a
// negative value, which callers should surface rather than hide.
func ComputeSavings(t PriceTable, hours float64) Savings {
	original := t.HourlyRate() * hours
	final := ResolvePrice(t, hours, nil)

	return Savings{
		Savings:         Round2(original - final),
		DiscountPercent: DiscountPercent(original, final),
		OriginalPrice:   Round2(original),
		FinalPrice:      final,
	}
}
