package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/prism/internal/domain"
)

func TestSectorScorer_EmptyUniverse(t *testing.T) {
	ss := NewSectorScorer()

	assert.Equal(t, NeutralScore, ss.Calculate(nil))
	assert.Equal(t, NeutralScore, ss.Calculate([]domain.FirmFundamentals{}))
}

func TestSectorScorer_CapWeighting(t *testing.T) {
	ss := NewSectorScorer()
	fs := NewFirmScorer()

	large := domain.FirmFundamentals{
		Ticker:       "BIG",
		MarketCap:    fp(9000),
		ROE:          fp(35),
		ProfitMargin: fp(30),
	}
	small := domain.FirmFundamentals{
		Ticker:       "SML",
		MarketCap:    fp(1000),
		ROE:          fp(-5),
		ProfitMargin: fp(-8),
	}

	want := 0.9*fs.Calculate(&large) + 0.1*fs.Calculate(&small)
	got := ss.Calculate([]domain.FirmFundamentals{large, small})

	assert.InDelta(t, want, got, 1e-9)
}

func TestSectorScorer_OrderInvariant(t *testing.T) {
	ss := NewSectorScorer()

	firms := []domain.FirmFundamentals{
		{Ticker: "A", MarketCap: fp(5000), ROE: fp(20)},
		{Ticker: "B", MarketCap: fp(3000), ROE: fp(10)},
		{Ticker: "C", MarketCap: fp(2000), ROE: fp(-2)},
	}
	reversed := []domain.FirmFundamentals{firms[2], firms[1], firms[0]}

	assert.InDelta(t, ss.Calculate(firms), ss.Calculate(reversed), 1e-9)
}

func TestSectorScorer_EqualWeightFallback(t *testing.T) {
	ss := NewSectorScorer()
	fs := NewFirmScorer()

	// Both firms carry a zero market cap, so weighting is impossible and
	// the aggregation degrades to a plain mean
	a := domain.FirmFundamentals{Ticker: "A", MarketCap: fp(0), ROE: fp(30)}
	b := domain.FirmFundamentals{Ticker: "B", MarketCap: fp(0), ROE: fp(-10)}

	want := (fs.Calculate(&a) + fs.Calculate(&b)) / 2
	got := ss.Calculate([]domain.FirmFundamentals{a, b})

	assert.InDelta(t, want, got, 1e-9)
}
