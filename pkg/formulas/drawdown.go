package formulas

// CalculateMaxDrawdown calculates the maximum peak-to-trough decline of a
// price series, expressed as a positive fraction (0.25 = 25% loss from peak).
// Returns nil when the series is too short to hold a drawdown.
func CalculateMaxDrawdown(prices []float64) *float64 {
	if len(prices) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := prices[0]

	for _, price := range prices {
		if price > peak {
			peak = price
		}

		if peak > 0 {
			drawdown := (peak - price) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return &maxDrawdown
}
