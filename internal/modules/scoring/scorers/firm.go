package scorers

import (
	"math"

	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/pkg/formulas"
)

// Firm score component weights (must sum to 1.0). Cash generation and
// profitability dominate; leverage is a minor penalty.
const (
	FirmWeightFCF         = 0.25
	FirmWeightROE         = 0.25
	FirmWeightMargin      = 0.20
	FirmWeightGrossMargin = 0.15
	FirmWeightGrowth      = 0.10
	FirmWeightDebt        = 0.05
)

// Scale-detection cutoffs for the fraction-vs-percentage heuristic.
// Upstream sources mix conventions (0.15 vs 15); a margin below 1 in
// magnitude is read as a fraction, a growth rate below 5 likewise.
const (
	marginFractionLimit = 1.0
	growthFractionLimit = 5.0
)

// FirmScorer combines one firm's fundamental ratios into a single quality
// score on the 0-100 scale.
type FirmScorer struct{}

// NewFirmScorer creates a new firm scorer
func NewFirmScorer() *FirmScorer {
	return &FirmScorer{}
}

// Calculate computes the firm quality score.
//
// A nil record, or one without a market cap, returns FirmDefaultScore (55):
// sparse disclosure is scored slightly positive rather than neutral. Each
// individually missing ratio also falls back to 55 so a firm is never
// punished for a gap in one field.
func (fs *FirmScorer) Calculate(f *domain.FirmFundamentals) float64 {
	if f == nil || f.MarketCap == nil {
		return FirmDefaultScore
	}

	roe := asPercent(f.ROE, marginFractionLimit)
	profitMargin := asPercent(f.ProfitMargin, marginFractionLimit)
	grossMargin := asPercent(f.GrossMargin, marginFractionLimit)
	revenueGrowth := asPercent(f.RevenueGrowth, growthFractionLimit)

	fcfYield := fcfYieldPct(f.FCF, f.MarketCap)

	fcfScore := formulas.NormalizePtr(fcfYield, BandFCFYield, FirmDefaultScore)
	roeScore := formulas.NormalizePtr(roe, BandROE, FirmDefaultScore)
	marginScore := formulas.NormalizePtr(profitMargin, BandProfitMargin, FirmDefaultScore)
	grossScore := formulas.NormalizePtr(grossMargin, BandGrossMargin, FirmDefaultScore)
	growthScore := formulas.NormalizePtr(revenueGrowth, BandRevenueGrowth, FirmDefaultScore)
	debtScore := formulas.NormalizePtr(f.DebtToEquity, BandDebtToEquity, FirmDefaultScore)

	return FirmWeightFCF*fcfScore +
		FirmWeightROE*roeScore +
		FirmWeightMargin*marginScore +
		FirmWeightGrossMargin*grossScore +
		FirmWeightGrowth*growthScore +
		FirmWeightDebt*debtScore
}

// asPercent applies the fraction-vs-percentage heuristic: a value whose
// magnitude is below the limit is treated as a fraction and scaled by 100.
func asPercent(v *float64, fractionLimit float64) *float64 {
	if v == nil {
		return nil
	}
	value := *v
	if math.Abs(value) < fractionLimit {
		value *= 100
	}
	return &value
}

// fcfYieldPct computes free-cash-flow yield as a percentage of market cap,
// or nil when either input is unavailable.
func fcfYieldPct(fcf, marketCap *float64) *float64 {
	if fcf == nil || marketCap == nil || *marketCap == 0 {
		return nil
	}
	yield := *fcf / *marketCap * 100
	return &yield
}
