package universe

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
)

// FundamentalsRepository handles the fundamentals table in universe.db.
type FundamentalsRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewFundamentalsRepository creates a new fundamentals repository
func NewFundamentalsRepository(db *sql.DB, log zerolog.Logger) *FundamentalsRepository {
	return &FundamentalsRepository{
		db:  db,
		log: log.With().Str("repo", "fundamentals").Logger(),
	}
}

// Fundamentals returns the record for a ticker, or nil when none exists.
func (r *FundamentalsRepository) Fundamentals(ticker string) (*domain.FirmFundamentals, error) {
	query := `
		SELECT ticker, market_cap, roe, profit_margin, revenue_growth,
		       gross_margin, debt_to_equity, fcf
		FROM fundamentals WHERE ticker = ?`

	var f domain.FirmFundamentals
	var marketCap, roe, profitMargin, revenueGrowth, grossMargin, debtToEquity, fcf sql.NullFloat64

	err := r.db.QueryRow(query, ticker).Scan(&f.Ticker, &marketCap, &roe,
		&profitMargin, &revenueGrowth, &grossMargin, &debtToEquity, &fcf)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fundamentals for %s: %w", ticker, err)
	}

	f.MarketCap = nullableFloat(marketCap)
	f.ROE = nullableFloat(roe)
	f.ProfitMargin = nullableFloat(profitMargin)
	f.RevenueGrowth = nullableFloat(revenueGrowth)
	f.GrossMargin = nullableFloat(grossMargin)
	f.DebtToEquity = nullableFloat(debtToEquity)
	f.FCF = nullableFloat(fcf)

	return &f, nil
}

// Upsert inserts or updates one fundamentals record.
func (r *FundamentalsRepository) Upsert(f domain.FirmFundamentals) error {
	query := `
		INSERT INTO fundamentals (ticker, market_cap, roe, profit_margin,
			revenue_growth, gross_margin, debt_to_equity, fcf, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(ticker) DO UPDATE SET
			market_cap = excluded.market_cap,
			roe = excluded.roe,
			profit_margin = excluded.profit_margin,
			revenue_growth = excluded.revenue_growth,
			gross_margin = excluded.gross_margin,
			debt_to_equity = excluded.debt_to_equity,
			fcf = excluded.fcf,
			fetched_at = excluded.fetched_at`

	_, err := r.db.Exec(query, f.Ticker,
		floatValue(f.MarketCap), floatValue(f.ROE), floatValue(f.ProfitMargin),
		floatValue(f.RevenueGrowth), floatValue(f.GrossMargin),
		floatValue(f.DebtToEquity), floatValue(f.FCF))
	if err != nil {
		return fmt.Errorf("failed to upsert fundamentals for %s: %w", f.Ticker, err)
	}
	return nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	value := v.Float64
	return &value
}

func floatValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
