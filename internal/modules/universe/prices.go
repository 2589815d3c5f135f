package universe

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/database"
	"github.com/aristath/prism/internal/domain"
)

const priceDateLayout = "2006-01-02"

// PriceRepository handles the price_history table in prices.db.
type PriceRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPriceRepository creates a new price history repository
func NewPriceRepository(db *sql.DB, log zerolog.Logger) *PriceRepository {
	return &PriceRepository{
		db:  db,
		log: log.With().Str("repo", "prices").Logger(),
	}
}

// PriceHistory returns the daily bars for a ticker inside the lookback
// window, oldest first.
func (r *PriceRepository) PriceHistory(ticker string, lookbackDays int) (domain.PriceSeries, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -lookbackDays).Format(priceDateLayout)

	query := `
		SELECT date, close, volume
		FROM price_history
		WHERE ticker = ? AND date >= ?
		ORDER BY date`

	rows, err := r.db.Query(query, ticker, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history for %s: %w", ticker, err)
	}
	defer rows.Close()

	var series domain.PriceSeries
	for rows.Next() {
		var dateStr string
		var bar domain.PriceBar
		if err := rows.Scan(&dateStr, &bar.Close, &bar.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan price bar: %w", err)
		}
		date, err := time.Parse(priceDateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q for %s: %w", dateStr, ticker, err)
		}
		bar.Date = date
		series = append(series, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price history: %w", err)
	}

	return series, nil
}

// SaveSeries replaces the stored bars for a ticker with the given series,
// inside one transaction.
func (r *PriceRepository) SaveSeries(ticker string, series domain.PriceSeries) error {
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM price_history WHERE ticker = ?`, ticker); err != nil {
			return fmt.Errorf("failed to clear price history for %s: %w", ticker, err)
		}

		stmt, err := tx.Prepare(`INSERT INTO price_history (ticker, date, close, volume) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare price insert: %w", err)
		}
		defer stmt.Close()

		for _, bar := range series {
			if _, err := stmt.Exec(ticker, bar.Date.Format(priceDateLayout), bar.Close, bar.Volume); err != nil {
				return fmt.Errorf("failed to insert price bar for %s: %w", ticker, err)
			}
		}
		return nil
	})
}
