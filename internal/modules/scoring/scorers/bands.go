package scorers

import "github.com/aristath/prism/pkg/formulas"

// Calibration bands for every normalized metric. These encode the domain
// calibration (e.g. ROE is judged against a -10%..40% range) and are kept
// as named package-level values rather than inline literals so a
// recalibration touches exactly one place.
var (
	// Firm fundamentals (percentage units after scale detection)
	BandROE           = formulas.Band{Min: -10, Max: 40}
	BandProfitMargin  = formulas.Band{Min: -10, Max: 50}
	BandRevenueGrowth = formulas.Band{Min: -20, Max: 50}
	BandGrossMargin   = formulas.Band{Min: 0, Max: 80}
	BandFCFYield      = formulas.Band{Min: -5, Max: 15}
	BandDebtToEquity  = formulas.Band{Min: 0, Max: 300, Invert: true}

	// Market behavior (fractional units)
	BandReturn12M  = formulas.Band{Min: -0.5, Max: 1.0}
	BandReturn6M   = formulas.Band{Min: -0.5, Max: 1.0}
	BandVolatility = formulas.Band{Min: 0.1, Max: 1.0, Invert: true}
	BandDrawdown   = formulas.Band{Min: 0, Max: 0.6, Invert: true}
	BandBeta       = formulas.Band{Min: 0.5, Max: 2.5, Invert: true}

	// Top-down macro
	BandGDPPerCapita  = formulas.Band{Min: 1000, Max: 100000}
	BandEconomicScale = formulas.Band{Min: 100, Max: 30000} // GDP in billions
	BandGDPGrowth     = formulas.Band{Min: -2, Max: 8}
	BandSWOTNet       = formulas.Band{Min: -8, Max: 8}

	// Structural
	BandHHI         = formulas.Band{Min: 0, Max: 5000}
	BandHHIInverted = formulas.Band{Min: 0, Max: 5000, Invert: true}
	BandPorterScale = formulas.Band{Min: 1, Max: 5}
)

const (
	// NeutralScore is the "unknown is neutral" default used wherever an
	// input is entirely absent.
	NeutralScore = 50.0

	// FirmDefaultScore is the slight-positive default for firm-level
	// fundamentals. Missing disclosure (common for non-domestic firms) is
	// deliberately treated better than known-weak numbers.
	FirmDefaultScore = 55.0
)
