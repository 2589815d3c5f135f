package formulas

// MinBetaSamples is the minimum number of aligned return observations
// required before a beta estimate is considered meaningful.
const MinBetaSamples = 20

// CalculateBeta calculates beta of an asset versus a benchmark from aligned
// daily return series: covariance(asset, benchmark) / variance(benchmark).
//
// Returns nil when the inputs are misaligned, too short (< MinBetaSamples),
// or the benchmark variance is zero; callers substitute a market-neutral
// default rather than trusting an unstable estimate.
func CalculateBeta(assetReturns, benchmarkReturns []float64) *float64 {
	if len(assetReturns) != len(benchmarkReturns) {
		return nil
	}
	if len(assetReturns) < MinBetaSamples {
		return nil
	}

	benchmarkVariance := Variance(benchmarkReturns)
	if benchmarkVariance == 0 {
		return nil
	}

	beta := Covariance(assetReturns, benchmarkReturns) / benchmarkVariance
	return &beta
}
