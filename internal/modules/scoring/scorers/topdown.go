package scorers

import (
	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/pkg/formulas"
)

// Top-down score component weights (must sum to 1.0). Wealth and scale
// carry the score; growth and the qualitative SWOT overlay fine-tune it.
const (
	TopDownWeightGDPPerCapita = 0.40
	TopDownWeightScale        = 0.40
	TopDownWeightGrowth       = 0.15
	TopDownWeightSWOT         = 0.05
)

// Fallback macro assumptions for countries missing from the directory:
// a mid-sized developed economy.
const (
	DefaultGDPGrowth    = 2.0
	DefaultGDPPerCapita = 20000.0
	DefaultGDPBillions  = 500.0
)

// TopDownScorer rates the macro attractiveness of a country combined with a
// sector-level SWOT overlay.
type TopDownScorer struct{}

// NewTopDownScorer creates a new top-down scorer
func NewTopDownScorer() *TopDownScorer {
	return &TopDownScorer{}
}

// Calculate computes the top-down score and its component breakdown. A nil
// macro record scores against the default assumptions rather than failing.
func (ts *TopDownScorer) Calculate(macro *domain.CountryMacro, swot domain.SWOTRatings) (float64, domain.TopDownDetail) {
	gdpPerCapita := DefaultGDPPerCapita
	gdpBillions := DefaultGDPBillions
	gdpGrowth := DefaultGDPGrowth
	if macro != nil {
		gdpPerCapita = macro.GDPPerCapita
		gdpBillions = macro.GDPBillions
		gdpGrowth = macro.GDPGrowth
	}

	detail := domain.TopDownDetail{
		GDPPerCapita:  formulas.Normalize(gdpPerCapita, BandGDPPerCapita),
		EconomicScale: formulas.Normalize(gdpBillions, BandEconomicScale),
		Growth:        formulas.Normalize(gdpGrowth, BandGDPGrowth),
		SWOT:          formulas.Normalize(swot.Net(), BandSWOTNet),
	}

	score := TopDownWeightGDPPerCapita*detail.GDPPerCapita +
		TopDownWeightScale*detail.EconomicScale +
		TopDownWeightGrowth*detail.Growth +
		TopDownWeightSWOT*detail.SWOT

	return score, detail
}
