package pricing

import "strconv"

// Rate keys of a price table.
const (
	KeyElse  = "else"
	KeyNight = "night"
)

// DefaultHourlyRate is used when the "else" key is missing from a table.
const DefaultHourlyRate = 100

// FixedTiers are the bookable fixed durations in hours, in display order.
var FixedTiers = []int{3, 6, 12, 24}

// PriceTable maps a rate key to a price in rubles.
//
// Recognized keys: "3", "6", "12", "24" (fixed-duration tiers), "else"
// (per-hour fallback rate) and "night" (optional flat night rate). A fixed
// tier with price 0 means "unset, use the hourly formula", not "free" —
// admins zero out a tier to revert it to formula pricing.
type PriceTable map[string]float64

// Tier returns the stored price for a fixed tier, 0 if missing.
func (t PriceTable) Tier(hours int) float64 {
	return t[strconv.Itoa(hours)]
}

// HourlyRate returns the fallback per-hour rate. The "else" key missing
// entirely falls back to DefaultHourlyRate; an explicit 0 is honored.
func (t PriceTable) HourlyRate() float64 {
	if rate, ok := t[KeyElse]; ok {
		return rate
	}
	return DefaultHourlyRate
}

// Night returns the flat night rate, 0 if unset.
func (t PriceTable) Night() float64 {
	return t[KeyNight]
}
