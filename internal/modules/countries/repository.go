// Package countries owns the static macroeconomic directory.
package countries

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
)

// Repository handles the countries table in countries.db.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new countries repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "countries").Logger(),
	}
}

// Macro returns the macro record for a country code, or nil when unknown.
func (r *Repository) Macro(code string) (*domain.CountryMacro, error) {
	query := `SELECT code, name, gdp_billions, gdp_per_capita, gdp_growth FROM countries WHERE code = ?`

	var m domain.CountryMacro
	err := r.db.QueryRow(query, code).Scan(&m.Code, &m.Name, &m.GDPBillions, &m.GDPPerCapita, &m.GDPGrowth)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query country %s: %w", code, err)
	}

	return &m, nil
}

// All returns every country sorted by code.
func (r *Repository) All() ([]domain.CountryMacro, error) {
	rows, err := r.db.Query(`SELECT code, name, gdp_billions, gdp_per_capita, gdp_growth FROM countries ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var macros []domain.CountryMacro
	for rows.Next() {
		var m domain.CountryMacro
		if err := rows.Scan(&m.Code, &m.Name, &m.GDPBillions, &m.GDPPerCapita, &m.GDPGrowth); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		macros = append(macros, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}

	return macros, nil
}

// Upsert inserts or updates one country record.
func (r *Repository) Upsert(m domain.CountryMacro) error {
	query := `
		INSERT INTO countries (code, name, gdp_billions, gdp_per_capita, gdp_growth, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			gdp_billions = excluded.gdp_billions,
			gdp_per_capita = excluded.gdp_per_capita,
			gdp_growth = excluded.gdp_growth,
			updated_at = excluded.updated_at`

	if _, err := r.db.Exec(query, m.Code, m.Name, m.GDPBillions, m.GDPPerCapita, m.GDPGrowth); err != nil {
		return fmt.Errorf("failed to upsert country %s: %w", m.Code, err)
	}
	return nil
}

// SeedDefaults loads the built-in macro records for countries that have
// none yet. Existing rows win over the seed data.
func (r *Repository) SeedDefaults() error {
	seeded := 0
	for _, m := range defaultMacros {
		existing, err := r.Macro(m.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := r.Upsert(m); err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		r.log.Info().Int("countries", seeded).Msg("seeded default macro records")
	}
	return nil
}

// defaultMacros is a coarse snapshot of IMF figures, enough to bootstrap a
// fresh install before any manual curation.
var defaultMacros = []domain.CountryMacro{
	{Code: "US", Name: "United States", GDPBillions: 27360, GDPPerCapita: 81695, GDPGrowth: 2.5},
	{Code: "CN", Name: "China", GDPBillions: 17790, GDPPerCapita: 12614, GDPGrowth: 5.2},
	{Code: "DE", Name: "Germany", GDPBillions: 4456, GDPPerCapita: 52746, GDPGrowth: -0.3},
	{Code: "JP", Name: "Japan", GDPBillions: 4213, GDPPerCapita: 33834, GDPGrowth: 1.9},
	{Code: "IN", Name: "India", GDPBillions: 3550, GDPPerCapita: 2485, GDPGrowth: 7.8},
	{Code: "GB", Name: "United Kingdom", GDPBillions: 3340, GDPPerCapita: 48867, GDPGrowth: 0.1},
	{Code: "FR", Name: "France", GDPBillions: 3031, GDPPerCapita: 44461, GDPGrowth: 0.7},
	{Code: "BR", Name: "Brazil", GDPBillions: 2174, GDPPerCapita: 10044, GDPGrowth: 2.9},
	{Code: "CA", Name: "Canada", GDPBillions: 2140, GDPPerCapita: 53372, GDPGrowth: 1.1},
	{Code: "KR", Name: "South Korea", GDPBillions: 1713, GDPPerCapita: 33121, GDPGrowth: 1.4},
	{Code: "AU", Name: "Australia", GDPBillions: 1724, GDPPerCapita: 64711, GDPGrowth: 2.0},
	{Code: "CH", Name: "Switzerland", GDPBillions: 885, GDPPerCapita: 99995, GDPGrowth: 0.8},
}
