package scorers

import (
	"math"

	"github.com/aristath/prism/internal/domain"
)

// SectorScorer aggregates firm quality scores into one fundamentals score
// for a (country, sector) pair.
type SectorScorer struct {
	firm *FirmScorer
}

// NewSectorScorer creates a new sector aggregator
func NewSectorScorer() *SectorScorer {
	return &SectorScorer{firm: NewFirmScorer()}
}

// Calculate computes the market-cap weighted average firm score.
//
// An empty constituent list returns the neutral 50 ("no constituents
// known"). When total market cap is zero, NaN or entirely missing, the
// aggregation falls back to an unweighted mean. The result is invariant to
// the order of the input slice.
func (ss *SectorScorer) Calculate(firms []domain.FirmFundamentals) float64 {
	if len(firms) == 0 {
		return NeutralScore
	}

	scores := make([]float64, len(firms))
	totalMcap := 0.0
	for i := range firms {
		scores[i] = ss.firm.Calculate(&firms[i])
		if firms[i].MarketCap != nil && !math.IsNaN(*firms[i].MarketCap) {
			totalMcap += *firms[i].MarketCap
		}
	}

	if totalMcap <= 0 || math.IsNaN(totalMcap) {
		// Equal weight when market cap data is missing
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		return sum / float64(len(scores))
	}

	weighted := 0.0
	for i := range firms {
		mcap := 0.0
		if firms[i].MarketCap != nil && !math.IsNaN(*firms[i].MarketCap) {
			mcap = *firms[i].MarketCap
		}
		weighted += scores[i] * (mcap / totalMcap)
	}

	return weighted
}
