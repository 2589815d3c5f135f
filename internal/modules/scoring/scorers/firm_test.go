package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/prism/internal/domain"
)

func fp(v float64) *float64 { return &v }

func TestFirmScorer_MissingRecord(t *testing.T) {
	fs := NewFirmScorer()

	assert.Equal(t, FirmDefaultScore, fs.Calculate(nil))
	assert.Equal(t, FirmDefaultScore, fs.Calculate(&domain.FirmFundamentals{Ticker: "AAPL"}))
}

func TestFirmScorer_OnlyMarketCap(t *testing.T) {
	fs := NewFirmScorer()

	// Every component falls back to 55, so the weighted sum is 55 too
	score := fs.Calculate(&domain.FirmFundamentals{
		Ticker:    "AAPL",
		MarketCap: fp(1e12),
	})
	assert.InDelta(t, FirmDefaultScore, score, 1e-9)
}

func TestFirmScorer_MidpointInputsScoreNeutral(t *testing.T) {
	fs := NewFirmScorer()

	// Every ratio sits at its band midpoint, FCF yield included
	// (50/1000 = 5%, midpoint of -5..15)
	score := fs.Calculate(&domain.FirmFundamentals{
		Ticker:        "MID",
		MarketCap:     fp(1000),
		FCF:           fp(50),
		ROE:           fp(15),
		ProfitMargin:  fp(20),
		GrossMargin:   fp(40),
		RevenueGrowth: fp(15),
		DebtToEquity:  fp(150),
	})
	assert.InDelta(t, 50.0, score, 1e-9)
}

func TestFirmScorer_FractionAndPercentAgree(t *testing.T) {
	fs := NewFirmScorer()

	asFraction := fs.Calculate(&domain.FirmFundamentals{
		MarketCap:     fp(1000),
		ROE:           fp(0.22),
		ProfitMargin:  fp(0.18),
		GrossMargin:   fp(0.44),
		RevenueGrowth: fp(0.12),
	})
	asPct := fs.Calculate(&domain.FirmFundamentals{
		MarketCap:     fp(1000),
		ROE:           fp(22),
		ProfitMargin:  fp(18),
		GrossMargin:   fp(44),
		RevenueGrowth: fp(12),
	})

	assert.InDelta(t, asPct, asFraction, 1e-9)
}

func TestFirmScorer_QualityOrdering(t *testing.T) {
	fs := NewFirmScorer()

	strong := fs.Calculate(&domain.FirmFundamentals{
		MarketCap:     fp(1e12),
		FCF:           fp(8e10), // 8% yield
		ROE:           fp(35),
		ProfitMargin:  fp(30),
		GrossMargin:   fp(60),
		RevenueGrowth: fp(20),
		DebtToEquity:  fp(40),
	})
	weak := fs.Calculate(&domain.FirmFundamentals{
		MarketCap:     fp(1e9),
		FCF:           fp(-5e7), // -5% yield
		ROE:           fp(-8),
		ProfitMargin:  fp(-5),
		GrossMargin:   fp(12),
		RevenueGrowth: fp(-10),
		DebtToEquity:  fp(280),
	})

	assert.Greater(t, strong, weak)
	assert.Greater(t, strong, 75.0)
	assert.Less(t, weak, 30.0)
}

func TestFirmScorer_ZeroMarketCapSkipsFCFYield(t *testing.T) {
	fs := NewFirmScorer()

	// Division by a zero market cap must not happen; the FCF component
	// falls back to the default instead
	score := fs.Calculate(&domain.FirmFundamentals{
		MarketCap: fp(0),
		FCF:       fp(100),
	})
	assert.InDelta(t, FirmDefaultScore, score, 1e-9)
}
