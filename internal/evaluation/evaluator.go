// Package evaluation orchestrates one full (country, sector) scoring pass:
// it gathers data through the provider interfaces, runs the four pillar
// calculators and blends them into a composite breakdown.
package evaluation

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/internal/evaluation/workers"
	"github.com/aristath/prism/internal/modules/scoring"
	"github.com/aristath/prism/internal/modules/scoring/scorers"
)

const (
	// DefaultBenchmarkTicker anchors beta and correlation calculations.
	DefaultBenchmarkTicker = "SPY"

	// DefaultLookbackDays is the calendar window requested from the price
	// provider; wide enough to cover 252 trading days.
	DefaultLookbackDays = 400

	// maxTopFirms caps the constituent tickers echoed in a breakdown.
	maxTopFirms = 5
)

// Providers bundles the data collaborators an evaluator needs. All of them
// are treated as best-effort: an error or empty result degrades the
// affected pillar to its neutral default.
type Providers struct {
	Prices       domain.PriceProvider
	Fundamentals domain.FundamentalsProvider
	Constituents domain.ConstituentsDirectory
	Countries    domain.CountryDirectory
	Assumptions  domain.AssumptionsDirectory
}

// Evaluator scores (country, sector) pairs.
type Evaluator struct {
	providers Providers

	sector     *scorers.SectorScorer
	structural *scorers.StructuralScorer
	behavior   *scorers.BehaviorScorer
	topdown    *scorers.TopDownScorer
	composite  *scoring.CompositeScorer

	benchmarkTicker string
	lookbackDays    int

	pool *workers.WorkerPool
	log  zerolog.Logger
}

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithBenchmark overrides the benchmark ticker.
func WithBenchmark(ticker string) Option {
	return func(e *Evaluator) { e.benchmarkTicker = ticker }
}

// WithLookback overrides the price history window in calendar days.
func WithLookback(days int) Option {
	return func(e *Evaluator) { e.lookbackDays = days }
}

// WithWorkers overrides the parallelism of EvaluateAll.
func WithWorkers(n int) Option {
	return func(e *Evaluator) { e.pool = workers.NewWorkerPool(n) }
}

// New creates an evaluator with the given providers and composite scorer.
func New(providers Providers, composite *scoring.CompositeScorer, log zerolog.Logger, opts ...Option) *Evaluator {
	e := &Evaluator{
		providers:       providers,
		sector:          scorers.NewSectorScorer(),
		structural:      scorers.NewStructuralScorer(),
		behavior:        scorers.NewBehaviorScorer(),
		topdown:         scorers.NewTopDownScorer(),
		composite:       composite,
		benchmarkTicker: DefaultBenchmarkTicker,
		lookbackDays:    DefaultLookbackDays,
		pool:            workers.NewWorkerPool(0),
		log:             log.With().Str("component", "evaluation").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores a single (country, sector) pair. Missing data never fails
// an evaluation; only an empty pair identity is an error.
func (e *Evaluator) Evaluate(country, sector string) (domain.ScoreBreakdown, error) {
	if country == "" || sector == "" {
		return domain.ScoreBreakdown{}, fmt.Errorf("evaluate: country and sector are required")
	}

	macro := e.lookupMacro(country)
	qualitative := e.lookupAssumptions(country, sector)
	tickers := e.lookupConstituents(country, sector)
	firms := e.lookupFundamentals(tickers)

	fundamentalsScore := e.sector.Calculate(firms)
	structuralScore, structuralDetail := e.structural.Calculate(sector, qualitative)
	topdownScore, topdownDetail := e.topdown.Calculate(macro, qualitative.SWOT)

	series := e.representativeSeries(tickers, firms)
	benchmark := e.priceHistory(e.benchmarkTicker)
	behaviorScore, behaviorMetrics := e.behavior.Calculate(series, benchmark)

	compositeScore, tier := e.composite.Calculate(fundamentalsScore, structuralScore, behaviorScore, topdownScore)

	breakdown := domain.ScoreBreakdown{
		Country:          country,
		Sector:           sector,
		Structural:       structuralScore,
		Fundamentals:     fundamentalsScore,
		Behavior:         behaviorScore,
		TopDown:          topdownScore,
		Composite:        compositeScore,
		Tier:             tier,
		StructuralDetail: structuralDetail,
		TopDownDetail:    topdownDetail,
		BehaviorMetrics:  behaviorMetrics,
		NumFirms:         len(firms),
		TopFirms:         topFirms(tickers),
	}
	if macro != nil {
		breakdown.CountryName = macro.Name
	}

	e.log.Debug().
		Str("country", country).
		Str("sector", sector).
		Float64("score", compositeScore).
		Str("tier", tier).
		Int("firms", len(firms)).
		Msg("pair evaluated")

	return breakdown, nil
}

// EvaluateAll scores every pair in parallel, preserving input order.
func (e *Evaluator) EvaluateAll(pairs []workers.ScoreJob, progress workers.ProgressFunc) []domain.ScoreBreakdown {
	e.log.Info().Int("pairs", len(pairs)).Msg("starting batch evaluation")
	return e.pool.ScoreBatch(pairs, e.Evaluate, progress)
}

func (e *Evaluator) lookupMacro(country string) *domain.CountryMacro {
	macro, err := e.providers.Countries.Macro(country)
	if err != nil {
		e.log.Warn().Err(err).Str("country", country).Msg("macro lookup failed")
		return nil
	}
	return macro
}

func (e *Evaluator) lookupAssumptions(country, sector string) domain.QualitativeInputs {
	q, err := e.providers.Assumptions.Assumptions(country, sector)
	if err != nil || q == nil {
		return domain.DefaultQualitativeInputs()
	}
	return *q
}

func (e *Evaluator) lookupConstituents(country, sector string) []string {
	tickers, err := e.providers.Constituents.Constituents(country, sector)
	if err != nil {
		e.log.Warn().Err(err).Str("country", country).Str("sector", sector).Msg("constituents lookup failed")
		return nil
	}
	return tickers
}

func (e *Evaluator) lookupFundamentals(tickers []string) []domain.FirmFundamentals {
	firms := make([]domain.FirmFundamentals, 0, len(tickers))
	for _, ticker := range tickers {
		record, err := e.providers.Fundamentals.Fundamentals(ticker)
		if err != nil || record == nil {
			continue
		}
		firms = append(firms, *record)
	}
	return firms
}

// representativeSeries picks the price history that stands in for the whole
// sector: the largest firm by market cap, falling back to the first listed
// constituent.
func (e *Evaluator) representativeSeries(tickers []string, firms []domain.FirmFundamentals) domain.PriceSeries {
	representative := ""
	largest := -1.0
	for _, firm := range firms {
		if firm.MarketCap != nil && *firm.MarketCap > largest {
			largest = *firm.MarketCap
			representative = firm.Ticker
		}
	}
	if representative == "" && len(tickers) > 0 {
		representative = tickers[0]
	}
	if representative == "" {
		return nil
	}
	return e.priceHistory(representative)
}

func (e *Evaluator) priceHistory(ticker string) domain.PriceSeries {
	series, err := e.providers.Prices.PriceHistory(ticker, e.lookbackDays)
	if err != nil {
		e.log.Warn().Err(err).Str("ticker", ticker).Msg("price history lookup failed")
		return nil
	}
	return series
}

func topFirms(tickers []string) []string {
	if len(tickers) <= maxTopFirms {
		return tickers
	}
	return tickers[:maxTopFirms]
}
