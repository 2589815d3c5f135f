package alignment

import (
	"fmt"

	"github.com/aristath/prism/internal/domain"
)

// pillar is one named component of a breakdown, used to rank strongest and
// weakest drivers when phrasing a justification.
type pillar struct {
	name  string
	score float64
}

func pillars(b domain.ScoreBreakdown) []pillar {
	return []pillar{
		{"fundamentals", b.Fundamentals},
		{"structure", b.Structural},
		{"macro backdrop", b.TopDown},
		{"market behavior", b.Behavior},
	}
}

// holdingJustification produces the one-sentence rationale attached to a
// scored holding: the composite, its tier, and the extreme pillars.
func holdingJustification(alloc domain.AllocationRecord, b domain.ScoreBreakdown, tier string) string {
	strongest, weakest := pillars(b)[0], pillars(b)[0]
	for _, p := range pillars(b) {
		if p.score > strongest.score {
			strongest = p
		}
		if p.score < weakest.score {
			weakest = p
		}
	}

	return fmt.Sprintf("%s / %s scores %.1f (%s): strongest pillar is %s (%.1f), weakest is %s (%.1f)",
		countryLabel(b), alloc.Sector, b.Composite, tier,
		strongest.name, strongest.score, weakest.name, weakest.score)
}

// notScoredJustification explains why a holding carries the neutral score.
func notScoredJustification(alloc domain.AllocationRecord) string {
	if alloc.Sector == domain.SectorDiversified {
		return fmt.Sprintf("%s is a diversified holding and is not mapped to a single country and sector", alloc.Ticker)
	}
	return fmt.Sprintf("no score available for %s / %s; treated as neutral", alloc.Country, alloc.Sector)
}

func countryLabel(b domain.ScoreBreakdown) string {
	if b.CountryName != "" {
		return b.CountryName
	}
	return b.Country
}
