package money

import "math"

// RoundCents rounds an amount to whole cents, half up.
// Line items and tax are kept at full precision; rounding is applied only
// to the charged total and to cash change.
func RoundCents(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}
