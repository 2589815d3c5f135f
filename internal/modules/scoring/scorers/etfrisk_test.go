package scorers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/prism/internal/domain"
)

func TestETFRiskScorer_NoData(t *testing.T) {
	es := NewETFRiskScorer()

	result := es.Calculate(ETFRiskInputs{})

	assert.Equal(t, NeutralScore, result.Volatility)
	assert.Equal(t, NeutralScore, result.Performance)
	assert.Equal(t, NeutralScore, result.Behavior)
	assert.InDelta(t, nonCyclicalBaseline, result.Fundamental, 1e-9)
	assert.InDelta(t, 0.9*50+0.1*nonCyclicalBaseline, result.Score, 1e-9)
}

func TestETFRiskScorer_CyclicalBaseline(t *testing.T) {
	es := NewETFRiskScorer()

	result := es.Calculate(ETFRiskInputs{Cyclical: true})

	assert.InDelta(t, cyclicalBaseline, result.Fundamental, 1e-9)
}

func TestETFRiskScorer_QualitativeOverlay(t *testing.T) {
	es := NewETFRiskScorer()

	favorable := domain.QualitativeInputs{
		RDIntensityPct: 12,
		HHI:            8000,
		Regulated:      false,
		SwitchingCost:  5,
		Lifecycle:      domain.StageGrowth,
		SWOT:           domain.SWOTRatings{Strength: 5, Weakness: 1, Opportunity: 5, Threat: 1},
	}
	hostile := domain.QualitativeInputs{
		RDIntensityPct: 0,
		HHI:            0,
		Regulated:      true,
		SwitchingCost:  1,
		Lifecycle:      domain.StageDecline,
		SWOT:           domain.SWOTRatings{Strength: 1, Weakness: 5, Opportunity: 1, Threat: 5},
	}

	low := es.Calculate(ETFRiskInputs{Qualitative: &favorable})
	high := es.Calculate(ETFRiskInputs{Qualitative: &hostile})

	assert.Less(t, low.Fundamental, high.Fundamental)
	assert.Less(t, low.Fundamental, nonCyclicalBaseline)
	assert.Greater(t, high.Fundamental, 60.0)
}

func TestETFRiskScorer_FullHistory(t *testing.T) {
	es := NewETFRiskScorer()

	// Two years of a gentle deterministic walk, benchmark slightly calmer,
	// with volume ramping up over time
	n := 520
	asset := make(domain.PriceSeries, n)
	bench := make(domain.PriceSeries, n)
	assetClose, benchClose := 100.0, 100.0
	for i := 0; i < n; i++ {
		r := 0.004 * math.Sin(float64(i)/3)
		assetClose *= 1 + 1.5*r
		benchClose *= 1 + r
		date := seriesEpoch.AddDate(0, 0, i)
		asset[i] = domain.PriceBar{Date: date, Close: assetClose, Volume: int64(1000 + 2*i)}
		bench[i] = domain.PriceBar{Date: date, Close: benchClose, Volume: 5000}
	}

	result := es.Calculate(ETFRiskInputs{Series: asset, Benchmark: bench})

	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
	for _, key := range []string{
		"ann_vol", "beta", "max_drawdown",
		"return_12m", "return_6m", "sharpe",
		"benchmark_correlation", "volume_trend", "fundamental",
	} {
		assert.Contains(t, result.Components, key)
	}
}

func TestQualitativePorterScore_Defaults(t *testing.T) {
	// unregulated 5.0, rd 5% -> 12.5 capped at 5, hhi 2000 -> 5.0,
	// switching 3, rivalry 3
	score := QualitativePorterScore(domain.DefaultQualitativeInputs())
	assert.InDelta(t, 4.2, score, 1e-9)
}

func TestQualitativePorterScore_LowForces(t *testing.T) {
	// rd 1% -> 10/4 = 2.5, hhi 400 -> 4/4 clamped up to 1.0, regulated 2.0,
	// switching 2, rivalry 3
	q := domain.QualitativeInputs{
		RDIntensityPct: 1,
		HHI:            400,
		Regulated:      true,
		SwitchingCost:  2,
	}
	score := QualitativePorterScore(q)
	assert.InDelta(t, (2.0+2.5+1.0+2.0+3.0)/5, score, 1e-9)
}

func TestQualitativeSWOTScore_Bounds(t *testing.T) {
	best := QualitativeSWOTScore(domain.SWOTRatings{Strength: 5, Weakness: 1, Opportunity: 5, Threat: 1})
	worst := QualitativeSWOTScore(domain.SWOTRatings{Strength: 1, Weakness: 5, Opportunity: 1, Threat: 5})

	assert.InDelta(t, 5.0, best, 1e-9)
	assert.InDelta(t, 1.0, worst, 1e-9)
}

func TestCombineQualitativeTopDown(t *testing.T) {
	combined := CombineQualitativeTopDown(4.2, 3.0, 3.0)
	assert.InDelta(t, 0.40*4.2+0.35*3+0.25*3, combined, 1e-9)
}
