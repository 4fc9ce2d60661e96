package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPriceRange(t *testing.T) {
	table := testTable()
	table[KeyNight] = 1500

	got := BuildPriceRange(table)

	require.Len(t, got.Standard, 4)
	assert.Equal(t, TierEntry{Hours: 3, Price: 300, PricePerHour: 100}, got.Standard[0])
	assert.Equal(t, TierEntry{Hours: 6, Price: 550, PricePerHour: 91.67}, got.Standard[1])
	assert.Equal(t, TierEntry{Hours: 12, Price: 1000, PricePerHour: 83.33}, got.Standard[2])
	assert.Equal(t, TierEntry{Hours: 24, Price: 1800, PricePerHour: 75}, got.Standard[3])

	assert.Equal(t, 100.0, got.Custom.PricePerHour)
	assert.Contains(t, got.Custom.Description, "100.00 ₽/час")

	require.NotNil(t, got.Night)
	assert.Equal(t, 1500.0, got.Night.Price)
}

func TestBuildPriceRange_MissingTiersBecomeZero(t *testing.T) {
	got := BuildPriceRange(PriceTable{})

	require.Len(t, got.Standard, 4)
	for i, hours := range FixedTiers {
		assert.Equal(t, hours, got.Standard[i].Hours)
		assert.Equal(t, 0.0, got.Standard[i].Price)
		assert.Equal(t, 0.0, got.Standard[i].PricePerHour)
	}
	// No "else" key: the default hourly rate shows up.
	assert.Equal(t, float64(DefaultHourlyRate), got.Custom.PricePerHour)
}

func TestBuildPriceRange_NightAbsentWhenUnset(t *testing.T) {
	assert.Nil(t, BuildPriceRange(testTable()).Night)

	zeroNight := testTable()
	zeroNight[KeyNight] = 0
	assert.Nil(t, BuildPriceRange(zeroNight).Night)
}
