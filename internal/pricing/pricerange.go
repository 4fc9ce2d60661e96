package pricing

import "fmt"

// TierEntry is one fixed-duration row of the price list.
type TierEntry struct {
	Hours        int     `json:"hours"`
	Price        float64 `json:"price"`
	PricePerHour float64 `json:"price_per_hour"`
}

// CustomEntry describes pricing for arbitrary durations.
type CustomEntry struct {
	PricePerHour float64 `json:"price_per_hour"`
	Description  string  `json:"description"`
}

// NightEntry is present only when the table carries a night rate.
type NightEntry struct {
	Price float64 `json:"price"`
}

// PriceRange is the display-ready summary of a price table.
type PriceRange struct {
	Standard []TierEntry  `json:"standard"`
	Custom   CustomEntry  `json:"custom"`
	Night    *NightEntry  `json:"night,omitempty"`
}

// BuildPriceRange derives the price list shown to users. It is a pure
// projection: no validation happens here, callers validate the table
// first when correctness matters.
func BuildPriceRange(t PriceTable) PriceRange {
	standard := make([]TierEntry, 0, len(FixedTiers))
	for _, hours := range FixedTiers {
		price := t.Tier(hours)
		standard = append(standard, TierEntry{
			Hours:        hours,
			Price:        price,
			PricePerHour: Round2(price / float64(hours)),
		})
	}

	rate := t.HourlyRate()
	rng := PriceRange{
		Standard: standard,
		Custom: CustomEntry{
			PricePerHour: rate,
			Description:  fmt.Sprintf("Произвольная длительность — %.2f ₽/час", rate),
		},
	}

	if night := t.Night(); night > 0 {
		rng.Night = &NightEntry{Price: night}
	}
	return rng
}
