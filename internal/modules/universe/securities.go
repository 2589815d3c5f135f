// Package universe owns the securities master data: which tickers exist,
// which (country, sector) pair each belongs to, their fundamentals, daily
// price history and the qualitative sector assumptions. Prices live in
// their own cache-profile store; everything else shares universe.db.
package universe

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Security is one row of the securities master table.
type Security struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Sector  string `json:"sector"`
	Active  bool   `json:"active"`
}

// Pair identifies one scorable (country, sector) combination.
type Pair struct {
	Country string `json:"country"`
	Sector  string `json:"sector"`
}

// SecurityRepository handles the securities table in universe.db.
type SecurityRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSecurityRepository creates a new securities repository
func NewSecurityRepository(db *sql.DB, log zerolog.Logger) *SecurityRepository {
	return &SecurityRepository{
		db:  db,
		log: log.With().Str("repo", "securities").Logger(),
	}
}

// Constituents returns the active tickers of a pair, largest market cap
// first. Tickers without fundamentals sort last.
func (r *SecurityRepository) Constituents(country, sector string) ([]string, error) {
	query := `
		SELECT s.ticker
		FROM securities s
		LEFT JOIN fundamentals f ON f.ticker = s.ticker
		WHERE s.country = ? AND s.sector = ? AND s.active = 1
		ORDER BY f.market_cap DESC NULLS LAST, s.ticker`

	rows, err := r.db.Query(query, country, sector)
	if err != nil {
		return nil, fmt.Errorf("failed to query constituents: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan constituent: %w", err)
		}
		tickers = append(tickers, ticker)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating constituents: %w", err)
	}

	return tickers, nil
}

// Pairs returns every distinct (country, sector) pair with at least one
// active security, in stable order.
func (r *SecurityRepository) Pairs() ([]Pair, error) {
	query := `
		SELECT DISTINCT country, sector
		FROM securities
		WHERE active = 1
		ORDER BY country, sector`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairs: %w", err)
	}
	defer rows.Close()

	var pairs []Pair
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.Country, &p.Sector); err != nil {
			return nil, fmt.Errorf("failed to scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pairs: %w", err)
	}

	return pairs, nil
}

// All returns every security, active or not.
func (r *SecurityRepository) All() ([]Security, error) {
	query := `SELECT ticker, name, country, sector, active FROM securities ORDER BY ticker`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query securities: %w", err)
	}
	defer rows.Close()

	var securities []Security
	for rows.Next() {
		var s Security
		var active int
		if err := rows.Scan(&s.Ticker, &s.Name, &s.Country, &s.Sector, &active); err != nil {
			return nil, fmt.Errorf("failed to scan security: %w", err)
		}
		s.Active = active == 1
		securities = append(securities, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating securities: %w", err)
	}

	return securities, nil
}

// Upsert inserts or updates one security.
func (r *SecurityRepository) Upsert(s Security) error {
	active := 0
	if s.Active {
		active = 1
	}

	query := `
		INSERT INTO securities (ticker, name, country, sector, active, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(ticker) DO UPDATE SET
			name = excluded.name,
			country = excluded.country,
			sector = excluded.sector,
			active = excluded.active,
			updated_at = excluded.updated_at`

	if _, err := r.db.Exec(query, s.Ticker, s.Name, s.Country, s.Sector, active); err != nil {
		return fmt.Errorf("failed to upsert security %s: %w", s.Ticker, err)
	}
	return nil
}

// Deactivate marks a security inactive without deleting its history.
func (r *SecurityRepository) Deactivate(ticker string) error {
	if _, err := r.db.Exec(`UPDATE securities SET active = 0, updated_at = datetime('now') WHERE ticker = ?`, ticker); err != nil {
		return fmt.Errorf("failed to deactivate security %s: %w", ticker, err)
	}
	return nil
}
