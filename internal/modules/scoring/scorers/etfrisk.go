package scorers

import (
	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/pkg/formulas"
)

// ETF risk category weights (must sum to 1.0). Unlike the opportunity
// scores, this scale reads high = risky.
const (
	ETFRiskWeightVolatility  = 0.40
	ETFRiskWeightPerformance = 0.30
	ETFRiskWeightBehavior    = 0.20
	ETFRiskWeightFundamental = 0.10
)

const (
	etfRiskFreeRate = 0.04

	// Fundamental risk baselines by sector character.
	cyclicalBaseline    = 60.0
	nonCyclicalBaseline = 20.0
)

// Risk bands. Favorable metrics (returns, sharpe) are inverted so that a
// strong result maps to a low risk contribution.
var (
	bandRiskVolatility  = formulas.Band{Min: 0, Max: 0.8}
	bandRiskBeta        = formulas.Band{Min: 0, Max: 3}
	bandRiskDrawdown    = formulas.Band{Min: 0, Max: 1}
	bandRiskReturn      = formulas.Band{Min: -1, Max: 1, Invert: true}
	bandRiskSharpe      = formulas.Band{Min: -3, Max: 3, Invert: true}
	bandRiskCorrelation = formulas.Band{Min: -1, Max: 1}
	bandRiskVolumeTrend = formulas.Band{Min: -1, Max: 2}
)

// ETFRiskInputs gathers everything the risk assessment can use. Benchmark
// and Qualitative are optional.
type ETFRiskInputs struct {
	Series      domain.PriceSeries
	Benchmark   domain.PriceSeries
	Cyclical    bool
	Qualitative *domain.QualitativeInputs
}

// ETFRiskResult is the category breakdown of one risk assessment. All
// values are 0-100 with high meaning risky. Components holds the individual
// normalized factor contributions keyed by factor name.
type ETFRiskResult struct {
	Score       float64            `json:"risk_score"`
	Volatility  float64            `json:"volatility_risk"`
	Performance float64            `json:"performance_risk"`
	Behavior    float64            `json:"behavior_risk"`
	Fundamental float64            `json:"fundamental_risk"`
	Components  map[string]float64 `json:"components"`
}

// ETFRiskScorer assesses the downside risk of a single instrument (built
// for broad ETFs that the opportunity scores cannot cover) from its price
// history and a qualitative overlay.
type ETFRiskScorer struct{}

// NewETFRiskScorer creates a new ETF risk scorer
func NewETFRiskScorer() *ETFRiskScorer {
	return &ETFRiskScorer{}
}

// Calculate computes the composite risk score. Each category is the mean of
// the factors that could actually be computed; a category with no usable
// factors scores neutral 50.
func (es *ETFRiskScorer) Calculate(in ETFRiskInputs) ETFRiskResult {
	components := make(map[string]float64)

	volatility := es.volatilityRisk(in, components)
	performance := es.performanceRisk(in, components)
	behavior := es.behaviorRisk(in, components)
	fundamental := es.fundamentalRisk(in)
	components["fundamental"] = fundamental

	score := ETFRiskWeightVolatility*volatility +
		ETFRiskWeightPerformance*performance +
		ETFRiskWeightBehavior*behavior +
		ETFRiskWeightFundamental*fundamental

	return ETFRiskResult{
		Score:       score,
		Volatility:  volatility,
		Performance: performance,
		Behavior:    behavior,
		Fundamental: fundamental,
		Components:  components,
	}
}

func (es *ETFRiskScorer) volatilityRisk(in ETFRiskInputs, components map[string]float64) float64 {
	if len(in.Series) == 0 {
		return NeutralScore
	}

	closes := trailingWindow(in.Series.Closes(), tradingDays12M)
	var factors []float64

	dailyReturns := formulas.CalculateReturns(closes)
	if len(dailyReturns) > minVolSamples {
		s := formulas.Normalize(formulas.AnnualizedVolatility(dailyReturns), bandRiskVolatility)
		components["ann_vol"] = s
		factors = append(factors, s)
	}

	assetRet, benchRet := alignedDailyReturns(in.Series, in.Benchmark)
	if b := formulas.CalculateBeta(assetRet, benchRet); b != nil {
		s := formulas.Normalize(*b, bandRiskBeta)
		components["beta"] = s
		factors = append(factors, s)
	}

	if dd := formulas.CalculateMaxDrawdown(closes); dd != nil {
		s := formulas.Normalize(*dd, bandRiskDrawdown)
		components["max_drawdown"] = s
		factors = append(factors, s)
	}

	return meanOrNeutral(factors)
}

func (es *ETFRiskScorer) performanceRisk(in ETFRiskInputs, components map[string]float64) float64 {
	if len(in.Series) == 0 {
		return NeutralScore
	}

	closes := in.Series.Closes()
	var factors []float64

	ret12 := periodReturn(closes, tradingDays12M)
	s12 := formulas.Normalize(ret12, bandRiskReturn)
	components["return_12m"] = s12
	factors = append(factors, s12)

	if len(closes) >= tradingDays6M {
		s6 := formulas.Normalize(periodReturn(closes, tradingDays6M), bandRiskReturn)
		components["return_6m"] = s6
		factors = append(factors, s6)
	}

	dailyReturns := formulas.CalculateReturns(closes)
	if sharpe := formulas.CalculateSharpeRatio(dailyReturns, etfRiskFreeRate, tradingDays12M); sharpe != nil {
		s := formulas.Normalize(*sharpe, bandRiskSharpe)
		components["sharpe"] = s
		factors = append(factors, s)
	}

	return meanOrNeutral(factors)
}

func (es *ETFRiskScorer) behaviorRisk(in ETFRiskInputs, components map[string]float64) float64 {
	var factors []float64

	assetRet, benchRet := alignedDailyReturns(in.Series, in.Benchmark)
	if len(assetRet) >= formulas.MinBetaSamples {
		s := formulas.Normalize(formulas.Correlation(assetRet, benchRet), bandRiskCorrelation)
		components["benchmark_correlation"] = s
		factors = append(factors, s)
	}

	if growth, ok := volumeTrend(in.Series); ok {
		s := formulas.Normalize(growth, bandRiskVolumeTrend)
		components["volume_trend"] = s
		factors = append(factors, s)
	}

	return meanOrNeutral(factors)
}

// fundamentalRisk combines the cyclicality baseline with the qualitative
// top-down favorability, inverted onto the risk scale.
func (es *ETFRiskScorer) fundamentalRisk(in ETFRiskInputs) float64 {
	baseline := nonCyclicalBaseline
	if in.Cyclical {
		baseline = cyclicalBaseline
	}
	if in.Qualitative == nil {
		return baseline
	}

	q := *in.Qualitative
	topdown := CombineQualitativeTopDown(
		QualitativePorterScore(q),
		QualitativeLifecycleScore(q.Lifecycle),
		QualitativeSWOTScore(q.SWOT),
	)
	topdownRisk := 100 * (1 - (topdown-1)/4)

	return 0.7*topdownRisk + 0.3*baseline
}

// volumeTrend compares average daily volume over the trailing six months
// with the six months before that.
func volumeTrend(series domain.PriceSeries) (float64, bool) {
	if len(series) < 2*tradingDays6M {
		return 0, false
	}

	recent := series[len(series)-tradingDays6M:]
	prior := series[len(series)-2*tradingDays6M : len(series)-tradingDays6M]

	priorAvg := avgVolume(prior)
	if priorAvg == 0 {
		return 0, false
	}
	return avgVolume(recent)/priorAvg - 1, true
}

func avgVolume(series domain.PriceSeries) float64 {
	total := 0.0
	for _, bar := range series {
		total += float64(bar.Volume)
	}
	return total / float64(len(series))
}

func trailingWindow(closes []float64, n int) []float64 {
	if len(closes) <= n {
		return closes
	}
	return closes[len(closes)-n:]
}

func meanOrNeutral(factors []float64) float64 {
	if len(factors) == 0 {
		return NeutralScore
	}
	return formulas.Mean(factors)
}
