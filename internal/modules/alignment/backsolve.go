package alignment

import (
	"math"

	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/internal/modules/scoring"
	"github.com/aristath/prism/pkg/formulas"
)

// weightShift is the step applied to the active preset when backsolving
// suggests leaning harder on quality: fundamentals up, momentum down.
const weightShift = 0.03

// BacksolveResult reports whether the portfolio's typical holding already
// sits at or above the target percentile of the score universe, and if not,
// which weight blend to try next.
type BacksolveResult struct {
	CurrentMedian     float64          `json:"current_median"`
	TargetPercentile  float64          `json:"target_percentile"`
	TargetScore       float64          `json:"target_score"`
	Gap               float64          `json:"gap"`
	AdjustmentsNeeded bool             `json:"adjustments_needed"`
	SuggestedWeights  *scoring.Weights `json:"suggested_weights,omitempty"`
}

// Backsolve compares the median score of the portfolio's scored holdings
// against the target percentile of all known scores. Diversified and
// unscored holdings are excluded from the median; a portfolio with none
// left is treated as sitting at neutral.
func (e *Engine) Backsolve(portfolio domain.Portfolio, scores ScoreSet, targetPercentile float64, active scoring.Weights) BacksolveResult {
	universe := scores.Scores()
	if len(universe) == 0 {
		e.log.Warn().Msg("backsolve requested with empty score universe")
		return BacksolveResult{
			CurrentMedian:    neutralScore,
			TargetPercentile: targetPercentile,
			TargetScore:      neutralScore,
		}
	}

	var held []float64
	for _, alloc := range portfolio {
		if alloc.Sector == domain.SectorDiversified {
			continue
		}
		if breakdown, ok := scores.Lookup(alloc.Country, alloc.Sector); ok {
			held = append(held, breakdown.Composite)
		}
	}

	current := neutralScore
	if len(held) > 0 {
		current = formulas.Median(held)
	}

	target := formulas.Quantile(targetPercentile, universe)
	if math.IsNaN(target) {
		target = neutralScore
	}

	result := BacksolveResult{
		CurrentMedian:    current,
		TargetPercentile: targetPercentile,
		TargetScore:      target,
	}
	if current >= target {
		return result
	}

	result.Gap = target - current
	result.AdjustmentsNeeded = true
	result.SuggestedWeights = shiftTowardQuality(active)

	e.log.Info().
		Float64("current_median", current).
		Float64("target_score", target).
		Float64("gap", result.Gap).
		Msg("portfolio below target percentile")

	return result
}

// shiftTowardQuality nudges the active blend toward fundamentals at the
// expense of behavior, clamping so the result still validates.
func shiftTowardQuality(active scoring.Weights) *scoring.Weights {
	shift := math.Min(weightShift, active.Behavior)
	suggested := scoring.Weights{
		Name:         active.Name + "+quality",
		Fundamentals: active.Fundamentals + shift,
		Structural:   active.Structural,
		TopDown:      active.TopDown,
		Behavior:     active.Behavior - shift,
	}
	return &suggested
}
