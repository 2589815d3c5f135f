// Package alignment compares a caller-supplied portfolio against the
// current opportunity scores: per-holding alignment, a portfolio-level
// weighted score, and a backsolving check against a target percentile.
package alignment

import (
	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/internal/modules/scoring"
)

// ScoreSet is an in-memory index of score breakdowns keyed by
// (country, sector).
type ScoreSet map[string]domain.ScoreBreakdown

func scoreKey(country, sector string) string {
	return country + "|" + sector
}

// NewScoreSet indexes a batch of breakdowns for lookup.
func NewScoreSet(breakdowns []domain.ScoreBreakdown) ScoreSet {
	set := make(ScoreSet, len(breakdowns))
	for _, b := range breakdowns {
		set[scoreKey(b.Country, b.Sector)] = b
	}
	return set
}

// Lookup returns the breakdown for a (country, sector) pair.
func (s ScoreSet) Lookup(country, sector string) (domain.ScoreBreakdown, bool) {
	b, ok := s[scoreKey(country, sector)]
	return b, ok
}

// Scores returns all composite scores in the set, in no particular order.
func (s ScoreSet) Scores() []float64 {
	out := make([]float64, 0, len(s))
	for _, b := range s {
		out = append(out, b.Composite)
	}
	return out
}

// Engine maps portfolios onto the score universe. The holding tier scheme
// labels individual positions; the portfolio scheme labels the aggregate.
type Engine struct {
	holdingTiers   scoring.TierScheme
	portfolioTiers scoring.TierScheme
	log            zerolog.Logger
}

// NewEngine validates both schemes and returns an engine.
func NewEngine(holdingTiers, portfolioTiers scoring.TierScheme, log zerolog.Logger) (*Engine, error) {
	if err := holdingTiers.Validate(); err != nil {
		return nil, err
	}
	if err := portfolioTiers.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		holdingTiers:   holdingTiers,
		portfolioTiers: portfolioTiers,
		log:            log.With().Str("component", "alignment").Logger(),
	}, nil
}

// NewDefaultEngine wires the standard holding scheme and the portfolio
// aggressiveness scheme.
func NewDefaultEngine(log zerolog.Logger) *Engine {
	engine, err := NewEngine(scoring.TierStandard, scoring.TierPortfolio, log)
	if err != nil {
		// built-in schemes are validated by their own tests
		panic(err)
	}
	return engine
}

// AlignHoldings joins every allocation with its (country, sector) score.
// Holdings without a matching score (broad Diversified ETFs included) get
// the neutral alignment score and the "Not Scored" tier; they still appear
// in the output so totals reconcile with the input portfolio.
func (e *Engine) AlignHoldings(portfolio domain.Portfolio, scores ScoreSet) []domain.AlignmentResult {
	results := make([]domain.AlignmentResult, 0, len(portfolio))
	for _, alloc := range portfolio {
		result := domain.AlignmentResult{
			Ticker:  alloc.Ticker,
			Country: alloc.Country,
			Sector:  alloc.Sector,
			Amount:  alloc.Amount,
		}

		breakdown, ok := scores.Lookup(alloc.Country, alloc.Sector)
		if !ok || alloc.Sector == domain.SectorDiversified {
			result.AlignmentScore = neutralScore
			result.Tier = domain.TierNotScored
			result.Justification = notScoredJustification(alloc)
		} else {
			composite := breakdown.Composite
			result.PrismScore = &composite
			result.AlignmentScore = composite
			result.Tier = e.holdingTiers.Tier(composite)
			result.Justification = holdingJustification(alloc, breakdown, result.Tier)
		}

		results = append(results, result)
	}

	e.log.Debug().
		Int("holdings", len(portfolio)).
		Int("scored", countScored(results)).
		Msg("aligned portfolio")

	return results
}

// PortfolioWeightedScore aggregates alignment results into one
// amount-weighted score. A portfolio with no monetary weight degrades to
// the neutral result rather than dividing by zero.
func (e *Engine) PortfolioWeightedScore(results []domain.AlignmentResult) domain.PortfolioScore {
	total := 0.0
	for _, r := range results {
		total += r.Amount
	}
	if total <= 0 {
		return domain.PortfolioScore{WeightedScore: neutralScore, Tier: "Neutral", TotalAllocation: 0}
	}

	weighted := 0.0
	for _, r := range results {
		weighted += r.AlignmentScore * (r.Amount / total)
	}

	return domain.PortfolioScore{
		WeightedScore:   weighted,
		Tier:            e.portfolioTiers.Tier(weighted),
		TotalAllocation: total,
	}
}

const neutralScore = 50.0

func countScored(results []domain.AlignmentResult) int {
	n := 0
	for _, r := range results {
		if r.PrismScore != nil {
			n++
		}
	}
	return n
}
