package evaluation

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/internal/evaluation/workers"
	"github.com/aristath/prism/internal/modules/scoring"
	"github.com/aristath/prism/internal/modules/scoring/scorers"
)

type stubProviders struct {
	prices       map[string]domain.PriceSeries
	fundamentals map[string]*domain.FirmFundamentals
	constituents map[string][]string
	macros       map[string]*domain.CountryMacro
	assumptions  map[string]*domain.QualitativeInputs
}

func (s *stubProviders) PriceHistory(ticker string, lookbackDays int) (domain.PriceSeries, error) {
	if s.prices == nil {
		return nil, errors.New("prices unavailable")
	}
	return s.prices[ticker], nil
}

func (s *stubProviders) Fundamentals(ticker string) (*domain.FirmFundamentals, error) {
	if s.fundamentals == nil {
		return nil, errors.New("fundamentals unavailable")
	}
	return s.fundamentals[ticker], nil
}

func (s *stubProviders) Constituents(country, sector string) ([]string, error) {
	if s.constituents == nil {
		return nil, errors.New("constituents unavailable")
	}
	return s.constituents[country+"|"+sector], nil
}

func (s *stubProviders) Macro(code string) (*domain.CountryMacro, error) {
	if s.macros == nil {
		return nil, errors.New("macros unavailable")
	}
	return s.macros[code], nil
}

func (s *stubProviders) Assumptions(country, sector string) (*domain.QualitativeInputs, error) {
	if s.assumptions == nil {
		return nil, errors.New("assumptions unavailable")
	}
	return s.assumptions[country+"|"+sector], nil
}

func (s *stubProviders) asProviders() Providers {
	return Providers{
		Prices:       s,
		Fundamentals: s,
		Constituents: s,
		Countries:    s,
		Assumptions:  s,
	}
}

func fp(v float64) *float64 { return &v }

func flatSeries(n int, close float64) domain.PriceSeries {
	epoch := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := make(domain.PriceSeries, n)
	for i := range series {
		series[i] = domain.PriceBar{Date: epoch.AddDate(0, 0, i), Close: close, Volume: 1000}
	}
	return series
}

func newTestEvaluator(t *testing.T, stub *stubProviders) *Evaluator {
	t.Helper()
	composite, err := scoring.NewCompositeScorer(scoring.DefaultWeights, scoring.DefaultTierScheme)
	require.NoError(t, err)
	return New(stub.asProviders(), composite, zerolog.Nop())
}

func TestEvaluate_FullData(t *testing.T) {
	apple := &domain.FirmFundamentals{Ticker: "AAPL", MarketCap: fp(3e12), ROE: fp(30), ProfitMargin: fp(25)}
	msft := &domain.FirmFundamentals{Ticker: "MSFT", MarketCap: fp(2.8e12), ROE: fp(28), ProfitMargin: fp(33)}

	stub := &stubProviders{
		prices: map[string]domain.PriceSeries{
			"AAPL": flatSeries(300, 180),
			"SPY":  flatSeries(300, 450),
		},
		fundamentals: map[string]*domain.FirmFundamentals{"AAPL": apple, "MSFT": msft},
		constituents: map[string][]string{"US|Information Technology": {"AAPL", "MSFT"}},
		macros: map[string]*domain.CountryMacro{
			"US": {Code: "US", Name: "United States", GDPBillions: 27000, GDPPerCapita: 80000, GDPGrowth: 2.5},
		},
		assumptions: map[string]*domain.QualitativeInputs{},
	}

	evaluator := newTestEvaluator(t, stub)
	breakdown, err := evaluator.Evaluate("US", "Information Technology")
	require.NoError(t, err)

	assert.Equal(t, "US", breakdown.Country)
	assert.Equal(t, "United States", breakdown.CountryName)
	assert.Equal(t, 2, breakdown.NumFirms)
	assert.Equal(t, []string{"AAPL", "MSFT"}, breakdown.TopFirms)

	// each pillar must agree with the calculators run directly
	wantFund := scorers.NewSectorScorer().Calculate([]domain.FirmFundamentals{*apple, *msft})
	assert.InDelta(t, wantFund, breakdown.Fundamentals, 1e-9)

	wantStruct, _ := scorers.NewStructuralScorer().Calculate("Information Technology", domain.DefaultQualitativeInputs())
	assert.InDelta(t, wantStruct, breakdown.Structural, 1e-9)

	want := 0.35*breakdown.Fundamentals + 0.30*breakdown.Structural +
		0.25*breakdown.TopDown + 0.10*breakdown.Behavior
	assert.InDelta(t, want, breakdown.Composite, 1e-9)
	assert.NotEmpty(t, breakdown.Tier)
	assert.NotNil(t, breakdown.BehaviorMetrics.Return12M)
}

func TestEvaluate_AllProvidersFailing(t *testing.T) {
	evaluator := newTestEvaluator(t, &stubProviders{})

	breakdown, err := evaluator.Evaluate("US", "Utilities")
	require.NoError(t, err)

	// fundamentals and behavior degrade to neutral, structure and macro to
	// their default assumptions
	assert.InDelta(t, 50.0, breakdown.Fundamentals, 1e-9)
	assert.InDelta(t, 50.0, breakdown.Behavior, 1e-9)
	assert.Equal(t, 0, breakdown.NumFirms)
	assert.Empty(t, breakdown.CountryName)

	wantTop, _ := scorers.NewTopDownScorer().Calculate(nil, domain.DefaultQualitativeInputs().SWOT)
	assert.InDelta(t, wantTop, breakdown.TopDown, 1e-9)
}

func TestEvaluate_RequiresPairIdentity(t *testing.T) {
	evaluator := newTestEvaluator(t, &stubProviders{})

	_, err := evaluator.Evaluate("", "Utilities")
	assert.Error(t, err)

	_, err = evaluator.Evaluate("US", "")
	assert.Error(t, err)
}

func TestEvaluate_RepresentativeIsLargestFirm(t *testing.T) {
	// Only the biggest constituent has price history; behavior must use it
	big := &domain.FirmFundamentals{Ticker: "BIG", MarketCap: fp(9e11)}
	small := &domain.FirmFundamentals{Ticker: "SML", MarketCap: fp(1e9)}

	rising := flatSeries(300, 100)
	for i := range rising {
		rising[i].Close = 100 + float64(i)
	}

	stub := &stubProviders{
		prices:       map[string]domain.PriceSeries{"BIG": rising},
		fundamentals: map[string]*domain.FirmFundamentals{"BIG": big, "SML": small},
		constituents: map[string][]string{"DE|Industrials": {"SML", "BIG"}},
		macros:       map[string]*domain.CountryMacro{},
		assumptions:  map[string]*domain.QualitativeInputs{},
	}

	evaluator := newTestEvaluator(t, stub)
	breakdown, err := evaluator.Evaluate("DE", "Industrials")
	require.NoError(t, err)

	require.NotNil(t, breakdown.BehaviorMetrics.Return12M)
	assert.Greater(t, *breakdown.BehaviorMetrics.Return12M, 0.0)
}

func TestEvaluateAll_PreservesOrder(t *testing.T) {
	stub := &stubProviders{
		prices:       map[string]domain.PriceSeries{},
		fundamentals: map[string]*domain.FirmFundamentals{},
		constituents: map[string][]string{},
		macros:       map[string]*domain.CountryMacro{},
		assumptions:  map[string]*domain.QualitativeInputs{},
	}
	evaluator := newTestEvaluator(t, stub)

	pairs := []workers.ScoreJob{
		{Country: "US", Sector: "Energy"},
		{Country: "DE", Sector: "Utilities"},
		{Country: "JP", Sector: "Financials"},
	}

	results := evaluator.EvaluateAll(pairs, nil)

	require.Len(t, results, 3)
	for i, pair := range pairs {
		assert.Equal(t, pair.Country, results[i].Country)
		assert.Equal(t, pair.Sector, results[i].Sector)
	}
}
