package domain

// The interfaces below are the engine's view of its data collaborators.
// Implementations live in internal/modules (SQLite repositories) and
// internal/clients (remote APIs); the engine itself performs no I/O and
// treats any error or empty result as "data absent", degrading to the
// documented neutral defaults instead of failing an evaluation.

// PriceProvider returns daily price history for a ticker. An empty series
// (or an error) means no data is available.
type PriceProvider interface {
	PriceHistory(ticker string, lookbackDays int) (PriceSeries, error)
}

// FundamentalsProvider returns the fundamentals record for a ticker, or nil
// when nothing is known about it.
type FundamentalsProvider interface {
	Fundamentals(ticker string) (*FirmFundamentals, error)
}

// ConstituentsDirectory lists the constituent tickers of a (country, sector)
// pair, largest market cap first. The list may legitimately be empty.
type ConstituentsDirectory interface {
	Constituents(country, sector string) ([]string, error)
}

// CountryDirectory returns the macro record for a country code, or nil when
// the country is unknown.
type CountryDirectory interface {
	Macro(code string) (*CountryMacro, error)
}

// AssumptionsDirectory returns the qualitative assumptions recorded for a
// (country, sector) pair, or nil when none exist (callers substitute
// DefaultQualitativeInputs).
type AssumptionsDirectory interface {
	Assumptions(country, sector string) (*QualitativeInputs, error)
}
