package scorers

import (
	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/pkg/formulas"
)

// Qualitative top-down blend used by the ETF risk assessment: a reduced
// five-forces read plus lifecycle and SWOT, all on the 1-5 scale where 5 is
// most favorable.
const (
	QualitativeWeightPorter    = 0.40
	QualitativeWeightLifecycle = 0.35
	QualitativeWeightSWOT      = 0.25
)

var qualitativeLifecycleValues = map[domain.LifecycleStage]float64{
	domain.StageIntro:    1.0,
	domain.StageGrowth:   5.0,
	domain.StageShakeout: 3.0,
	domain.StageMature:   3.0,
	domain.StageDecline:  1.0,
}

var (
	bandRDFraction = formulas.Band{Min: 0, Max: 0.10}
	bandHHIFull    = formulas.Band{Min: 0, Max: 10000}
)

// QualitativePorterScore condenses the analyst assumptions into a single
// five-forces rating. Rivalry has no direct input here and is pinned
// neutral; switching cost stands in for buyer lock-in.
func QualitativePorterScore(q domain.QualitativeInputs) float64 {
	regulation := 5.0
	if q.Regulated {
		regulation = 2.0
	}
	rdScore := formulas.Clamp(formulas.Normalize(q.RDIntensityPct/100, bandRDFraction)/4, 1, 5)
	hhiScore := formulas.Clamp(formulas.Normalize(q.HHI, bandHHIFull)/4, 1, 5)
	switching := formulas.Clamp(float64(q.SwitchingCost), 1, 5)
	rivalry := 3.0

	return (regulation + rdScore + hhiScore + switching + rivalry) / 5.0
}

// QualitativeLifecycleScore maps a lifecycle stage onto the 1-5 scale with
// a sharper profile than the structural model: early and declining stages
// are rated outright unfavorable.
func QualitativeLifecycleScore(stage domain.LifecycleStage) float64 {
	if v, ok := qualitativeLifecycleValues[stage]; ok {
		return v
	}
	return 3.0
}

// QualitativeSWOTScore rescales the net SWOT balance [-8, 8] onto [1, 5].
func QualitativeSWOTScore(s domain.SWOTRatings) float64 {
	return formulas.Clamp((s.Net()+8)/16*4+1, 1, 5)
}

// CombineQualitativeTopDown blends the three qualitative ratings into one
// 1-5 favorability value.
func CombineQualitativeTopDown(porter, lifecycle, swot float64) float64 {
	return QualitativeWeightPorter*porter +
		QualitativeWeightLifecycle*lifecycle +
		QualitativeWeightSWOT*swot
}
