package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratePtr(v float64) *float64 { return &v }

func testTable() PriceTable {
	return PriceTable{
		"3":     300,
		"6":     550,
		"12":    1000,
		"24":    1800,
		KeyElse: 100,
	}
}

func TestResolvePrice_FixedTiers(t *testing.T) {
	table := testTable()

	tests := []struct {
		hours float64
		want  float64
	}{
		{3, 300},
		{6, 550},
		{12, 1000},
		{24, 1800},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolvePrice(table, tt.hours, nil), "hours=%v", tt.hours)
	}
}

func TestResolvePrice_FormulaFallback(t *testing.T) {
	table := testTable()

	tests := []struct {
		name  string
		hours float64
		want  float64
	}{
		{"below first tier, no discount", 2, 200},
		{"between tiers, no discount", 5, 500},
		{"fractional hours", 4.5, 450},
		{"half-day discount", 13, 1235},     // 100*13*0.95
		{"half-day discount upper", 23, 2185}, // 100*23*0.95
		{"full-day discount", 25, 2250},     // 100*25*0.90
		{"full-day discount large", 48, 4320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePrice(table, tt.hours, nil))
		})
	}
}

func TestResolvePrice_ZeroTierUsesFormula(t *testing.T) {
	// A zeroed tier means "use formula", not "free". 24h at 100/h with
	// the full-day discount: 2160, not 0.
	table := PriceTable{"24": 0, KeyElse: 100}
	assert.Equal(t, 2160.0, ResolvePrice(table, 24, nil))

	// Same for a missing tier key.
	assert.Equal(t, 2160.0, ResolvePrice(PriceTable{KeyElse: 100}, 24, nil))
}

func TestResolvePrice_DefaultHourlyRate(t *testing.T) {
	// No "else" key at all: the 100/h default applies.
	assert.Equal(t, 500.0, ResolvePrice(PriceTable{}, 5, nil))

	// An explicit zero rate is honored, not replaced by the default.
	assert.Equal(t, 0.0, ResolvePrice(PriceTable{KeyElse: 0}, 5, nil))
}

func TestResolvePrice_CustomRateWins(t *testing.T) {
	table := testTable()

	// The override ignores tiers and volume discounts alike.
	assert.Equal(t, 450.0, ResolvePrice(table, 3, ratePtr(150)))
	assert.Equal(t, 3600.0, ResolvePrice(table, 24, ratePtr(150)))
	assert.Equal(t, 449.97, ResolvePrice(table, 3, ratePtr(149.99)))
}

func TestResolveNightPrice(t *testing.T) {
	table := testTable()
	table[KeyNight] = 1500

	// Night rate is flat: hours are ignored.
	assert.Equal(t, 1500.0, ResolveNightPrice(table, 6))
	assert.Equal(t, 1500.0, ResolveNightPrice(table, 10))

	// Unset or zero night rate falls back to daytime resolution.
	assert.Equal(t, 550.0, ResolveNightPrice(testTable(), 6))
	zeroNight := testTable()
	zeroNight[KeyNight] = 0
	assert.Equal(t, 550.0, ResolveNightPrice(zeroNight, 6))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.345))
	assert.Equal(t, 12.34, Round2(12.344))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -25.0, Round2(-25))
	assert.Equal(t, 100.0, Round2(99.999))
}
