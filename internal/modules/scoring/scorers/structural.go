package scorers

import (
	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/pkg/formulas"
)

// Structural score blend: five-forces attractiveness dominates, industry
// lifecycle tempers it.
const (
	StructuralWeightPorter    = 0.70
	StructuralWeightLifecycle = 0.30
)

// lifecycleValues maps an industry lifecycle stage onto the 1-5 force scale.
// Growth is most attractive; Intro is speculative, Decline is worst but not
// minimal (declining industries can still throw off cash).
var lifecycleValues = map[domain.LifecycleStage]float64{
	domain.StageIntro:    2.0,
	domain.StageGrowth:   4.0,
	domain.StageShakeout: 3.0,
	domain.StageMature:   3.5,
	domain.StageDecline:  2.5,
}

const lifecycleUnknown = 3.5

// StructuralScorer rates the competitive attractiveness of a sector from
// analyst assumptions, via a five-forces model plus a lifecycle adjustment.
// All forces are expressed on a 1-5 scale where 5 is most attractive for an
// investor in the sector.
type StructuralScorer struct{}

// NewStructuralScorer creates a new structural scorer
func NewStructuralScorer() *StructuralScorer {
	return &StructuralScorer{}
}

// Calculate computes the structural score and its force breakdown.
func (ss *StructuralScorer) Calculate(sector string, q domain.QualitativeInputs) (float64, domain.StructuralDetail) {
	barriers := ss.barriersToEntry(q)
	substitutes := substitutesThreat(sector)
	supplier := ss.supplierPower(q.HHI)
	buyer := buyerPower(sector)
	rivalry := ss.rivalryIntensity(q.HHI)

	porterAvg := (barriers + substitutes + supplier + buyer + rivalry) / 5.0
	porterScore := formulas.Normalize(porterAvg, BandPorterScale)

	stageValue, ok := lifecycleValues[q.Lifecycle]
	if !ok {
		stageValue = lifecycleUnknown
	}
	lifecycleScore := formulas.Normalize(stageValue, BandPorterScale)

	detail := domain.StructuralDetail{
		Barriers:    barriers,
		Substitutes: substitutes,
		Supplier:    supplier,
		Buyer:       buyer,
		Rivalry:     rivalry,
		Porter:      porterScore,
		Lifecycle:   lifecycleScore,
	}

	score := StructuralWeightPorter*porterScore + StructuralWeightLifecycle*lifecycleScore
	return score, detail
}

// barriersToEntry rates entry barriers from R&D intensity and regulation.
// Heavy R&D and regulatory moats both keep entrants out.
func (ss *StructuralScorer) barriersToEntry(q domain.QualitativeInputs) float64 {
	barriers := 2.5
	switch {
	case q.RDIntensityPct > 10:
		barriers = 4.5
	case q.RDIntensityPct > 5:
		barriers = 3.5
	}
	if q.Regulated {
		barriers += 0.5
	}
	return formulas.Clamp(barriers, 1, 5)
}

// substitutesThreat rates substitution risk per sector. Tech and comms face
// constant disruption; utilities and real estate have no real substitutes.
func substitutesThreat(sector string) float64 {
	switch sector {
	case "Information Technology", "Communication Services":
		return 4.0
	case "Utilities", "Real Estate":
		return 2.0
	default:
		return 3.0
	}
}

// supplierPower maps market concentration onto the force scale. A
// concentrated market (high HHI) means incumbents hold pricing power over
// suppliers, which is favorable.
func (ss *StructuralScorer) supplierPower(hhi float64) float64 {
	return formulas.Clamp(formulas.Normalize(hhi, BandHHI)/20, 1, 5)
}

// buyerPower rates bargaining pressure from customers. Fragmented consumer
// demand is favorable; concentrated industrial buyers are the baseline.
func buyerPower(sector string) float64 {
	switch sector {
	case "Consumer Discretionary", "Consumer Staples":
		return 3.5
	default:
		return 3.0
	}
}

// rivalryIntensity is the inverse concentration read: a fragmented market
// (low HHI) means brutal competition, a concentrated one means settled
// positions.
func (ss *StructuralScorer) rivalryIntensity(hhi float64) float64 {
	return formulas.Clamp(formulas.Normalize(hhi, BandHHIInverted)/20, 1, 5)
}
