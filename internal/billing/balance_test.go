package billing

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requiredPtr(v float64) *float64 { return &v }

func testFormat(amount float64) string {
	return fmt.Sprintf("%.2f ₽", amount)
}

func TestHasSufficientBalance(t *testing.T) {
	assert.True(t, HasSufficientBalance(100, 100))
	assert.True(t, HasSufficientBalance(100.01, 100))
	assert.False(t, HasSufficientBalance(99.99, 100))
	assert.True(t, HasSufficientBalance(0, 0))
}

func TestHasSufficientBalance_NaNIsInsufficient(t *testing.T) {
	nan := math.NaN()

	assert.False(t, HasSufficientBalance(nan, 100))
	assert.False(t, HasSufficientBalance(100, nan))
	assert.False(t, HasSufficientBalance(nan, nan))
}

func TestRemainingBalance(t *testing.T) {
	assert.Equal(t, 25.0, RemainingBalance(100, 75))
	assert.Equal(t, -25.0, RemainingBalance(50, 75)) // overdraft, not clamped
	assert.Equal(t, 0.01, RemainingBalance(100, 99.99))
	assert.Equal(t, 0.0, RemainingBalance(100, 100))
}

func TestFormatBalanceStatus_Sufficient(t *testing.T) {
	got := FormatBalanceStatus(250, requiredPtr(100), testFormat)

	assert.Equal(t, StatusSufficient, got.Status)
	assert.Equal(t, "250.00 ₽", got.Text)
	assert.Nil(t, got.Difference)
}

func TestFormatBalanceStatus_Insufficient(t *testing.T) {
	got := FormatBalanceStatus(50, requiredPtr(75), testFormat)

	assert.Equal(t, StatusInsufficient, got.Status)
	assert.Equal(t, "50.00 ₽", got.Text)
	require.NotNil(t, got.Difference)
	assert.Equal(t, "25.00 ₽", *got.Difference)
}

func TestFormatBalanceStatus_NoRequiredAmount(t *testing.T) {
	got := FormatBalanceStatus(50, nil, testFormat)

	assert.Equal(t, StatusSufficient, got.Status)
	assert.Nil(t, got.Difference)
}

func TestFormatBalanceStatus_ExactBalanceIsSufficient(t *testing.T) {
	got := FormatBalanceStatus(100, requiredPtr(100), testFormat)

	assert.Equal(t, StatusSufficient, got.Status)
	assert.Nil(t, got.Difference)
}
