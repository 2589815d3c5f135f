// Package domain contains the core value types of the PRISM scoring system.
// Everything here is a plain value object: constructed fresh per evaluation,
// never mutated after construction, and free of infrastructure dependencies.
package domain

import "time"

// FirmFundamentals is a per-company fundamentals record. Any field may be
// absent (nil). Ratio fields may arrive either as fractions (0.15) or as
// percentages (15) depending on the upstream source; the firm scorer
// detects the scale via a magnitude heuristic.
type FirmFundamentals struct {
	Ticker        string   `json:"ticker"`
	MarketCap     *float64 `json:"market_cap"`
	ROE           *float64 `json:"roe"`
	ProfitMargin  *float64 `json:"profit_margin"`
	RevenueGrowth *float64 `json:"revenue_growth"`
	GrossMargin   *float64 `json:"gross_margin"`
	DebtToEquity  *float64 `json:"debt_to_equity"`
	FCF           *float64 `json:"fcf"`
}

// PriceBar is one row of a daily price series.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is an ordered (oldest first) daily price history.
type PriceSeries []PriceBar

// Closes extracts the close prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// CountryMacro is a static per-country macroeconomic record.
type CountryMacro struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	GDPBillions  float64 `json:"gdp_billions"`
	GDPPerCapita float64 `json:"gdp_per_capita"`
	GDPGrowth    float64 `json:"gdp_growth"`
}

// LifecycleStage is the industry maturity label used by the structural score.
type LifecycleStage string

const (
	StageIntro    LifecycleStage = "Intro"
	StageGrowth   LifecycleStage = "Growth"
	StageShakeout LifecycleStage = "Shakeout"
	StageMature   LifecycleStage = "Mature"
	StageDecline  LifecycleStage = "Decline"
)

// SWOTRatings holds the four qualitative 1-5 sliders.
type SWOTRatings struct {
	Strength    int `json:"strength"`
	Weakness    int `json:"weakness"`
	Opportunity int `json:"opportunity"`
	Threat      int `json:"threat"`
}

// Net returns (strength - weakness) + (opportunity - threat), range [-8, 8].
func (s SWOTRatings) Net() float64 {
	return float64((s.Strength - s.Weakness) + (s.Opportunity - s.Threat))
}

// QualitativeInputs are the analyst-supplied assumptions for one
// (country, sector) pair.
type QualitativeInputs struct {
	RDIntensityPct float64        `json:"rd_intensity_pct"` // R&D spend as % of revenue
	HHI            float64        `json:"hhi"`              // Herfindahl-Hirschman index, 0-10000
	Regulated      bool           `json:"regulated"`
	SwitchingCost  int            `json:"switching_cost"` // 1-5
	Lifecycle      LifecycleStage `json:"lifecycle"`
	SWOT           SWOTRatings    `json:"swot"`
}

// DefaultQualitativeInputs returns the neutral assumption set: medium R&D,
// moderately concentrated market, unregulated, mature industry, SWOT 3s.
func DefaultQualitativeInputs() QualitativeInputs {
	return QualitativeInputs{
		RDIntensityPct: 5.0,
		HHI:            2000,
		Regulated:      false,
		SwitchingCost:  3,
		Lifecycle:      StageMature,
		SWOT:           SWOTRatings{Strength: 3, Weakness: 3, Opportunity: 3, Threat: 3},
	}
}

// BehaviorMetrics holds the raw market-behavior statistics derived from a
// price series. Pointer fields are nil when the series was too short (or
// absent) for the statistic to be computed at all.
type BehaviorMetrics struct {
	Return12M   *float64 `json:"ret_12m"`
	Return6M    *float64 `json:"ret_6m"`
	AnnVol      *float64 `json:"ann_vol"`
	MaxDrawdown *float64 `json:"max_drawdown"`
	Beta        *float64 `json:"beta"`
}

// StructuralDetail carries the component scores behind a structural score.
// Forces are on the 1-5 Porter scale; Porter and Lifecycle are 0-100.
type StructuralDetail struct {
	Barriers    float64 `json:"barriers"`
	Substitutes float64 `json:"substitutes"`
	Supplier    float64 `json:"supplier_power"`
	Buyer       float64 `json:"buyer_power"`
	Rivalry     float64 `json:"rivalry"`
	Porter      float64 `json:"porter_score"`
	Lifecycle   float64 `json:"lifecycle_score"`
}

// TopDownDetail carries the component scores behind a top-down score.
type TopDownDetail struct {
	GDPPerCapita  float64 `json:"gdp_pc_score"`
	EconomicScale float64 `json:"scale_score"`
	Growth        float64 `json:"growth_score"`
	SWOT          float64 `json:"swot_score"`
}

// ScoreBreakdown is the immutable output record of one (country, sector)
// evaluation. Downstream consumers (alignment engine, snapshots, API) only
// ever read it.
type ScoreBreakdown struct {
	Country     string `json:"country"`
	CountryName string `json:"country_name"`
	Sector      string `json:"sector"`

	Structural   float64 `json:"structural_score"`
	Fundamentals float64 `json:"fundamentals_score"`
	Behavior     float64 `json:"behavior_score"`
	TopDown      float64 `json:"topdown_score"`
	Composite    float64 `json:"prism_score"`
	Tier         string  `json:"tier"`

	StructuralDetail StructuralDetail `json:"structural_detail"`
	TopDownDetail    TopDownDetail    `json:"topdown_detail"`
	BehaviorMetrics  BehaviorMetrics  `json:"behavior_metrics"`

	NumFirms int      `json:"num_firms"`
	TopFirms []string `json:"top_firms"`
}

// AllocationRecord is one portfolio holding supplied by the caller. The
// engine never stores or persists allocations; a Portfolio is always an
// explicit value passed into the alignment engine.
type AllocationRecord struct {
	Ticker  string  `json:"ticker"`
	Amount  float64 `json:"amount"`
	Country string  `json:"country"`
	Sector  string  `json:"sector"`
}

// Portfolio is an ordered list of allocations.
type Portfolio []AllocationRecord

// TotalAmount sums the monetary amounts across all allocations.
func (p Portfolio) TotalAmount() float64 {
	total := 0.0
	for _, a := range p {
		total += a.Amount
	}
	return total
}

// SectorDiversified is the pseudo-sector used for broad ETFs that cannot be
// mapped to a single (country, sector) pair. Diversified holdings are never
// scored and are excluded from backsolving.
const SectorDiversified = "Diversified"

// TierNotScored is assigned to holdings with no matching (country, sector)
// score.
const TierNotScored = "Not Scored"

// AlignmentResult joins one allocation with its (country, sector) score.
// PrismScore is nil when no score was available for the pair; such holdings
// get the neutral alignment score and the "Not Scored" tier.
type AlignmentResult struct {
	Ticker         string   `json:"ticker"`
	Country        string   `json:"country"`
	Sector         string   `json:"sector"`
	Amount         float64  `json:"amount"`
	PrismScore     *float64 `json:"prism_score"`
	AlignmentScore float64  `json:"alignment_score"`
	Tier           string   `json:"tier"`
	Justification  string   `json:"justification,omitempty"`
}

// PortfolioScore is the weighted-average score of a whole portfolio.
type PortfolioScore struct {
	WeightedScore   float64 `json:"weighted_score"`
	Tier            string  `json:"tier"`
	TotalAllocation float64 `json:"total_allocation"`
}
