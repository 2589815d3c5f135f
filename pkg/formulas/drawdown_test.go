package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMaxDrawdown(t *testing.T) {
	// Peak 120, trough 90 -> 25% drawdown
	prices := []float64{100, 120, 110, 90, 95}

	dd := CalculateMaxDrawdown(prices)
	require.NotNil(t, dd)
	assert.InDelta(t, 0.25, *dd, 1e-9)
}

func TestCalculateMaxDrawdown_MonotonicRise(t *testing.T) {
	prices := []float64{100, 101, 105, 120}

	dd := CalculateMaxDrawdown(prices)
	require.NotNil(t, dd)
	assert.Equal(t, 0.0, *dd)
}

func TestCalculateMaxDrawdown_TooShort(t *testing.T) {
	assert.Nil(t, CalculateMaxDrawdown([]float64{100}))
	assert.Nil(t, CalculateMaxDrawdown(nil))
}
