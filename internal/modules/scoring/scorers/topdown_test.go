package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/prism/internal/domain"
)

func neutralSWOT() domain.SWOTRatings {
	return domain.SWOTRatings{Strength: 3, Weakness: 3, Opportunity: 3, Threat: 3}
}

func TestTopDownScorer_ComponentBlend(t *testing.T) {
	ts := NewTopDownScorer()

	macro := &domain.CountryMacro{
		Code:         "US",
		GDPBillions:  27000,
		GDPPerCapita: 80000,
		GDPGrowth:    2.5,
	}

	score, detail := ts.Calculate(macro, neutralSWOT())

	assert.InDelta(t, (80000.0-1000)/99000*100, detail.GDPPerCapita, 1e-9)
	assert.InDelta(t, (27000.0-100)/29900*100, detail.EconomicScale, 1e-9)
	assert.InDelta(t, (2.5+2)/10*100, detail.Growth, 1e-9)
	assert.InDelta(t, 50.0, detail.SWOT, 1e-9)

	want := 0.40*detail.GDPPerCapita + 0.40*detail.EconomicScale +
		0.15*detail.Growth + 0.05*detail.SWOT
	assert.InDelta(t, want, score, 1e-9)
}

func TestTopDownScorer_MissingMacroUsesDefaults(t *testing.T) {
	ts := NewTopDownScorer()

	score, detail := ts.Calculate(nil, neutralSWOT())

	assert.InDelta(t, (DefaultGDPPerCapita-1000)/99000*100, detail.GDPPerCapita, 1e-9)
	assert.InDelta(t, (DefaultGDPBillions-100)/29900*100, detail.EconomicScale, 1e-9)
	assert.InDelta(t, (DefaultGDPGrowth+2)/10*100, detail.Growth, 1e-9)
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 50.0)
}

func TestTopDownScorer_RicherEconomyScoresHigher(t *testing.T) {
	ts := NewTopDownScorer()

	rich, _ := ts.Calculate(&domain.CountryMacro{
		GDPBillions: 25000, GDPPerCapita: 75000, GDPGrowth: 3,
	}, neutralSWOT())
	poor, _ := ts.Calculate(&domain.CountryMacro{
		GDPBillions: 300, GDPPerCapita: 4000, GDPGrowth: 1,
	}, neutralSWOT())

	assert.Greater(t, rich, poor)
}

func TestTopDownScorer_SWOTOverlay(t *testing.T) {
	ts := NewTopDownScorer()

	macro := &domain.CountryMacro{GDPBillions: 4000, GDPPerCapita: 45000, GDPGrowth: 2}
	strong, _ := ts.Calculate(macro, domain.SWOTRatings{Strength: 5, Weakness: 1, Opportunity: 5, Threat: 1})
	weak, _ := ts.Calculate(macro, domain.SWOTRatings{Strength: 1, Weakness: 5, Opportunity: 1, Threat: 5})

	// SWOT carries 5% of the blend: full swing is 5 points
	assert.InDelta(t, 5.0, strong-weak, 1e-9)
}
