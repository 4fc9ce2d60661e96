package pricing

import "math"

// Round2 rounds a price to whole kopecks: round(x*100)/100, half away
// from zero. All monetary outputs of this package go through it.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
