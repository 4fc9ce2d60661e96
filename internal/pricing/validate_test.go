package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MonotonicTable(t *testing.T) {
	got := Validate(map[string]any{
		"3": 300.0, "6": 550.0, "12": 1000.0, "24": 1800.0, "else": 100.0,
	})

	assert.True(t, got.IsValid)
	assert.Empty(t, got.Errors)
}

func TestValidate_Idempotent(t *testing.T) {
	raw := map[string]any{
		"3": 100.0, "6": 50.0, "12": 60.0, "24": 10.0, "else": 100.0,
	}
	first := Validate(raw)
	second := Validate(raw)

	assert.Equal(t, first, second)
}

func TestValidate_SingleMonotonicityViolation(t *testing.T) {
	// 6h(50) < 3h(100) ok; 12h(60) >= 6h(50) violates; 24h(10) < 12h ok.
	got := Validate(map[string]any{
		"3": 100.0, "6": 50.0, "12": 60.0, "24": 10.0, "else": 100.0,
	})

	assert.False(t, got.IsValid)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "цена за 12 ч. должна быть ниже цены за 6 ч.", got.Errors[0])
}

func TestValidate_MissingAndInvalidFields(t *testing.T) {
	got := Validate(map[string]any{
		"3":    300.0,
		"6":    nil,      // explicit null counts as missing
		"12":   "дорого", // non-numeric
		"24":   -5.0,     // negative
		"else": 100.0,
	})

	assert.False(t, got.IsValid)
	require.Len(t, got.Errors, 3)
	// Field findings come in key order 3, 6, 12, 24, else.
	assert.Equal(t, `не задана цена для тарифа "6"`, got.Errors[0])
	assert.Equal(t, `цена для тарифа "12" должна быть неотрицательным числом`, got.Errors[1])
	assert.Equal(t, `цена для тарифа "24" должна быть неотрицательным числом`, got.Errors[2])
}

func TestValidate_EmptyTable(t *testing.T) {
	got := Validate(map[string]any{})

	assert.False(t, got.IsValid)
	assert.Len(t, got.Errors, 5)
}

func TestValidate_FindingOrderIsDeterministic(t *testing.T) {
	// Field findings precede monotonicity findings, which run in order
	// 24-vs-12, 12-vs-6, 6-vs-3.
	got := Validate(map[string]any{
		"3": 10.0, "6": 20.0, "12": 30.0, "24": 40.0, // fully inverted
	})

	require.Len(t, got.Errors, 4)
	assert.Equal(t, `не задана цена для тарифа "else"`, got.Errors[0])
	assert.Equal(t, "цена за 24 ч. должна быть ниже цены за 12 ч.", got.Errors[1])
	assert.Equal(t, "цена за 12 ч. должна быть ниже цены за 6 ч.", got.Errors[2])
	assert.Equal(t, "цена за 6 ч. должна быть ниже цены за 3 ч.", got.Errors[3])
}

func TestValidate_ZeroTierSkipsMonotonicity(t *testing.T) {
	// A zeroed tier is "unset": no monotonicity finding against it.
	got := Validate(map[string]any{
		"3": 0.0, "6": 550.0, "12": 1000.0, "24": 1800.0, "else": 100.0,
	})

	// 1000 >= 550 and 1800 >= 1000 still violate; 6-vs-3 is skipped.
	require.Len(t, got.Errors, 2)
	assert.Equal(t, "цена за 24 ч. должна быть ниже цены за 12 ч.", got.Errors[0])
	assert.Equal(t, "цена за 12 ч. должна быть ниже цены за 6 ч.", got.Errors[1])
}

func TestValidate_AcceptsDecodedJSON(t *testing.T) {
	var raw map[string]any
	err := json.Unmarshal([]byte(`{"3":300,"6":550,"12":1000,"24":1800,"else":100,"night":1500}`), &raw)
	require.NoError(t, err)

	got := Validate(raw)
	assert.True(t, got.IsValid)
}
