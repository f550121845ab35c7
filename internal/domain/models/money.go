package models

import "math"

// RoundHalfUp rounds to the nearest integer with halves going toward positive
// infinity, matching the rounding the dashboard has always shown on screen.
// math.Round is not used because it rounds halves away from zero, which
// differs for negative line incomes (lab cost lines).
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// SanitizeAmount coerces malformed numeric input to zero. Negative, NaN and
// infinite amounts are treated as never entered.
func SanitizeAmount(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return x
}
