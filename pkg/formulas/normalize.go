package formulas

import "math"

// Band defines the calibration range for a raw metric before it is mapped
// onto the common 0-100 scale. Invert flips the scale for metrics where a
// lower raw value is the better outcome (volatility, drawdown, leverage).
type Band struct {
	Min    float64
	Max    float64
	Invert bool
}

// Normalize min-max scales value into [0, 100] against the band, clipping
// out-of-range inputs to the band edges.
//
// Policy (callers rely on all of these):
//   - NaN input returns 50.0 ("unknown is neutral"), never an error
//   - values outside [Min, Max] saturate at 0 or 100, they do not extrapolate
//   - a degenerate band (Min == Max) is uninformative and returns 50.0
//   - Invert maps the result to 100 - result
func Normalize(value float64, band Band) float64 {
	if math.IsNaN(value) {
		return 50.0
	}
	if band.Max == band.Min {
		return 50.0
	}

	clipped := math.Min(math.Max(value, band.Min), band.Max)
	normalized := 100 * (clipped - band.Min) / (band.Max - band.Min)

	if band.Invert {
		normalized = 100 - normalized
	}

	return normalized
}

// NormalizePtr normalizes an optional value, returning the fallback score
// when the value is absent. Used by calculators whose missing-data default
// is not the neutral 50 (e.g. firm fundamentals default to 55).
func NormalizePtr(value *float64, band Band, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return Normalize(*value, band)
}

// Clamp bounds value to [min, max].
func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}
