package pricing

import (
	"encoding/json"
	"fmt"
)

// requiredKeys in reporting order.
var requiredKeys = []string{"3", "6", "12", "24", KeyElse}

// monotonicityPairs: the longer tier must be strictly cheaper than the
// shorter one. Checked in reporting order after the per-field checks.
var monotonicityPairs = [][2]int{{24, 12}, {12, 6}, {6, 3}}

// ValidationResult accumulates the findings for a price table. Errors
// come in a fixed order: missing/invalid-value findings for the keys
// 3, 6, 12, 24, else, then monotonicity findings for 24-vs-12, 12-vs-6,
// 6-vs-3.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate checks a raw price table (e.g. JSON decoded from an admin
// message) before it is trusted by the resolver. It never fails early:
// all findings are collected in one pass and the caller decides whether
// to reject the table.
//
// Monotonicity is only enforced between two positive tiers; a zero or
// unparsable tier does not trigger a monotonicity finding.
func Validate(raw map[string]any) ValidationResult {
	var errs []string

	for _, key := range requiredKeys {
		value, ok := raw[key]
		if !ok || value == nil {
			errs = append(errs, fmt.Sprintf("не задана цена для тарифа %q", key))
			continue
		}
		if price, ok := toNumber(value); !ok || price < 0 {
			errs = append(errs, fmt.Sprintf("цена для тарифа %q должна быть неотрицательным числом", key))
		}
	}

	for _, pair := range monotonicityPairs {
		longer, shorter := pair[0], pair[1]
		longerPrice, okL := tierNumber(raw, longer)
		shorterPrice, okS := tierNumber(raw, shorter)
		if !okL || !okS || longerPrice <= 0 || shorterPrice <= 0 {
			continue
		}
		if longerPrice >= shorterPrice {
			errs = append(errs, fmt.Sprintf("цена за %d ч. должна быть ниже цены за %d ч.", longer, shorter))
		}
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

func tierNumber(raw map[string]any, hours int) (float64, bool) {
	value, ok := raw[fmt.Sprintf("%d", hours)]
	if !ok || value == nil {
		return 0, false
	}
	return toNumber(value)
}

// toNumber accepts the numeric shapes a decoded JSON document or direct
// Go caller can produce.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
