package scorers

import (
	"sort"
	"time"

	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/pkg/formulas"
)

// Behavior score component weights (must sum to 1.0).
const (
	BehaviorWeightReturn12M = 0.25
	BehaviorWeightReturn6M  = 0.25
	BehaviorWeightVol       = 0.20
	BehaviorWeightDrawdown  = 0.20
	BehaviorWeightBeta      = 0.10
)

const (
	tradingDays12M = 252
	tradingDays6M  = 126

	// minVolSamples is the minimum number of daily returns before the
	// computed annualized volatility is trusted over the default.
	minVolSamples = 20

	// DefaultAnnVol substitutes for volatility on very short series.
	DefaultAnnVol = 0.30

	// DefaultBeta substitutes for beta when alignment with the benchmark
	// yields too few overlapping points.
	DefaultBeta = 1.0
)

// BehaviorScorer rates recent market behavior of a sector's representative
// price series: momentum, volatility, drawdown and benchmark beta.
type BehaviorScorer struct{}

// NewBehaviorScorer creates a new behavior scorer
func NewBehaviorScorer() *BehaviorScorer {
	return &BehaviorScorer{}
}

// Calculate computes the behavior score and the raw metrics behind it.
//
// An empty series returns the neutral 50 with no metrics. Short series
// degrade metric by metric: the 12-month return falls back to the full
// available window, the 6-month return to the 12-month one, volatility and
// beta to fixed defaults. The series is assumed oldest-first.
func (bs *BehaviorScorer) Calculate(series, benchmark domain.PriceSeries) (float64, domain.BehaviorMetrics) {
	if len(series) == 0 {
		return NeutralScore, domain.BehaviorMetrics{}
	}

	closes := series.Closes()
	n := len(closes)

	ret12 := periodReturn(closes, tradingDays12M)
	ret6 := ret12
	if n >= tradingDays6M {
		ret6 = periodReturn(closes, tradingDays6M)
	}

	dailyReturns := formulas.CalculateReturns(closes)
	annVol := DefaultAnnVol
	if len(dailyReturns) > minVolSamples {
		annVol = formulas.AnnualizedVolatility(dailyReturns)
	}

	maxDD := 0.0
	if dd := formulas.CalculateMaxDrawdown(closes); dd != nil {
		maxDD = *dd
	}

	beta := DefaultBeta
	assetRet, benchRet := alignedDailyReturns(series, benchmark)
	if b := formulas.CalculateBeta(assetRet, benchRet); b != nil {
		beta = *b
	}

	metrics := domain.BehaviorMetrics{
		Return12M:   &ret12,
		Return6M:    &ret6,
		AnnVol:      &annVol,
		MaxDrawdown: &maxDD,
		Beta:        &beta,
	}

	score := BehaviorWeightReturn12M*formulas.Normalize(ret12, BandReturn12M) +
		BehaviorWeightReturn6M*formulas.Normalize(ret6, BandReturn6M) +
		BehaviorWeightVol*formulas.Normalize(annVol, BandVolatility) +
		BehaviorWeightDrawdown*formulas.Normalize(maxDD, BandDrawdown) +
		BehaviorWeightBeta*formulas.Normalize(beta, BandBeta)

	return score, metrics
}

// periodReturn computes the simple return over the trailing lookback bars,
// or over the whole series when it is shorter than the lookback.
func periodReturn(closes []float64, lookback int) float64 {
	start := closes[0]
	if len(closes) >= lookback {
		start = closes[len(closes)-lookback]
	}
	if start == 0 {
		return 0
	}
	return closes[len(closes)-1]/start - 1
}

// alignedDailyReturns computes daily returns for both series restricted to
// the trading dates they share, in chronological order. Price sources cover
// different holiday calendars, so beta must be computed on the intersection
// rather than on positional pairing.
func alignedDailyReturns(asset, benchmark domain.PriceSeries) ([]float64, []float64) {
	benchCloses := make(map[time.Time]float64, len(benchmark))
	for _, bar := range benchmark {
		benchCloses[bar.Date] = bar.Close
	}

	type pair struct {
		date  time.Time
		asset float64
		bench float64
	}
	var shared []pair
	for _, bar := range asset {
		if bc, ok := benchCloses[bar.Date]; ok {
			shared = append(shared, pair{date: bar.Date, asset: bar.Close, bench: bc})
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i].date.Before(shared[j].date) })

	if len(shared) < 2 {
		return nil, nil
	}

	assetRet := make([]float64, 0, len(shared)-1)
	benchRet := make([]float64, 0, len(shared)-1)
	for i := 1; i < len(shared); i++ {
		if shared[i-1].asset == 0 || shared[i-1].bench == 0 {
			continue
		}
		assetRet = append(assetRet, shared[i].asset/shared[i-1].asset-1)
		benchRet = append(benchRet, shared[i].bench/shared[i-1].bench-1)
	}
	return assetRet, benchRet
}
