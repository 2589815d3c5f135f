package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Midpoint(t *testing.T) {
	score := Normalize(0.4, Band{Min: 0.0, Max: 0.8})
	assert.Equal(t, 50.0, score, "Midpoint of band should normalize to 50")
}

func TestNormalize_Bounds(t *testing.T) {
	band := Band{Min: 0, Max: 100}

	assert.Equal(t, 0.0, Normalize(0, band))
	assert.Equal(t, 100.0, Normalize(100, band))
	assert.Equal(t, 25.0, Normalize(25, band))
}

func TestNormalize_ClipsOutOfRange(t *testing.T) {
	band := Band{Min: -10, Max: 40}

	// Out-of-range inputs saturate at the boundary value, no extrapolation
	assert.Equal(t, 100.0, Normalize(500, band), "Above max should saturate at 100")
	assert.Equal(t, 0.0, Normalize(-500, band), "Below min should saturate at 0")
	assert.Equal(t, Normalize(40, band), Normalize(9999, band), "Clipping beyond the band never changes the result past the boundary")
}

func TestNormalize_NaNReturnsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, Normalize(math.NaN(), Band{Min: 0, Max: 1}))
}

func TestNormalize_DegenerateBandReturnsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, Normalize(3.0, Band{Min: 5, Max: 5}))
}

func TestNormalize_InvertIsComplement(t *testing.T) {
	// normalize(v, invert=true) == 100 - normalize(v, invert=false) for all v
	band := Band{Min: 0.1, Max: 1.0}
	inverted := Band{Min: 0.1, Max: 1.0, Invert: true}

	for _, v := range []float64{-1, 0.1, 0.25, 0.5, 0.77, 1.0, 3.0} {
		assert.InDelta(t, 100-Normalize(v, band), Normalize(v, inverted), 1e-12)
	}
}

func TestNormalizePtr(t *testing.T) {
	band := Band{Min: 0, Max: 100}

	assert.Equal(t, 55.0, NormalizePtr(nil, band, 55.0), "Missing value should return the fallback")

	v := 30.0
	assert.Equal(t, 30.0, NormalizePtr(&v, band, 55.0))
}
