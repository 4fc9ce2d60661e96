package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name       string
		original   float64
		discounted float64
		want       int
	}{
		{"plain ten percent", 100, 90, 10},
		{"rounded up", 100, 84.4, 16},
		{"equal prices", 100, 100, 0},
		{"zero original", 0, 5, 0},
		{"negative original", -10, 5, 0},
		{"price increase is not a discount", 100, 120, 0},
		{"full discount", 100, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountPercent(tt.original, tt.discounted))
		})
	}
}

func TestComputeSavings_VolumeDiscount(t *testing.T) {
	// 24h at the default-free formula: original 2400, final 2160.
	got := ComputeSavings(PriceTable{KeyElse: 100}, 24)

	assert.Equal(t, 2400.0, got.OriginalPrice)
	assert.Equal(t, 2160.0, got.FinalPrice)
	assert.Equal(t, 240.0, got.Savings)
	assert.Equal(t, 10, got.DiscountPercent)
}

func TestComputeSavings_FixedTierBaseline(t *testing.T) {
	// The baseline is always the hourly formula, so a cheap fixed tier
	// shows up as savings against hourly rental.
	got := ComputeSavings(testTable(), 24)

	assert.Equal(t, 2400.0, got.OriginalPrice)
	assert.Equal(t, 1800.0, got.FinalPrice)
	assert.Equal(t, 600.0, got.Savings)
	assert.Equal(t, 25, got.DiscountPercent)
}

func TestComputeSavings_NegativeNotClamped(t *testing.T) {
	// A fixed tier priced above the formula yields negative savings;
	// callers surface it, this package does not hide it.
	table := PriceTable{"3": 500, KeyElse: 100}
	got := ComputeSavings(table, 3)

	assert.Equal(t, 300.0, got.OriginalPrice)
	assert.Equal(t, 500.0, got.FinalPrice)
	assert.Equal(t, -200.0, got.Savings)
	assert.Equal(t, 0, got.DiscountPercent)
}

func TestComputeSavings_NoDiscountShortDuration(t *testing.T) {
	got := ComputeSavings(PriceTable{KeyElse: 100}, 5)

	assert.Equal(t, 500.0, got.OriginalPrice)
	assert.Equal(t, 500.0, got.FinalPrice)
	assert.Equal(t, 0.0, got.Savings)
	assert.Equal(t, 0, got.DiscountPercent)
}
