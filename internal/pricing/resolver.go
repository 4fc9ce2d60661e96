package pricing

// Volume discount thresholds for formula-priced durations. Checked in
// descending order so the largest applicable discount wins.
const (
	fullDayHours  = 24
	halfDayHours  = 12
	fullDayFactor = 0.90
	halfDayFactor = 0.95
)

// ResolvePrice computes the price for renting for the given number of
// hours.
//
// Resolution order:
//  1. customRate, when non-nil, overrides everything: Round2(rate*hours).
//  2. An exact fixed-tier match (3/6/12/24 hours) with a positive stored
//     price returns that price as stored, without re-rounding.
//  3. Otherwise hours*HourlyRate() with the volume discount applied,
//     rounded to kopecks.
//
// A zero-valued tier falls through to the formula (see PriceTable).
func ResolvePrice(t PriceTable, hours float64, customRate *float64) float64 {
	if customRate != nil {
		return Round2(*customRate * hours)
	}

	if fixed, ok := fixedTierPrice(t, hours); ok {
		return fixed
	}

	total := t.HourlyRate() * hours
	switch {
	case hours >= fullDayHours:
		total *= fullDayFactor
	case hours >= halfDayHours:
		total *= halfDayFactor
	}
	return Round2(total)
}

// ResolveNightPrice returns the flat night rate when one is set, ignoring
// hours. Without a night rate it falls back to daytime resolution.
func ResolveNightPrice(t PriceTable, hours float64) float64 {
	if night := t.Night(); night > 0 {
		return night
	}
	return ResolvePrice(t, hours, nil)
}

func fixedTierPrice(t PriceTable, hours float64) (float64, bool) {
	for _, tier := range FixedTiers {
		if hours == float64(tier) {
			if price := t.Tier(tier); price > 0 {
				return price, true
			}
			return 0, false
		}
	}
	return 0, false
}
