package universe

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
)

// AssumptionsRepository handles the sector_assumptions table in universe.db.
type AssumptionsRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewAssumptionsRepository creates a new sector assumptions repository
func NewAssumptionsRepository(db *sql.DB, log zerolog.Logger) *AssumptionsRepository {
	return &AssumptionsRepository{
		db:  db,
		log: log.With().Str("repo", "assumptions").Logger(),
	}
}

// Assumptions returns the qualitative inputs recorded for a pair, or nil
// when none exist.
func (r *AssumptionsRepository) Assumptions(country, sector string) (*domain.QualitativeInputs, error) {
	query := `
		SELECT rd_intensity_pct, hhi, regulated, switching_cost, lifecycle,
		       swot_strength, swot_weakness, swot_opportunity, swot_threat
		FROM sector_assumptions
		WHERE country = ? AND sector = ?`

	var q domain.QualitativeInputs
	var regulated int
	var lifecycle string

	err := r.db.QueryRow(query, country, sector).Scan(
		&q.RDIntensityPct, &q.HHI, &regulated, &q.SwitchingCost, &lifecycle,
		&q.SWOT.Strength, &q.SWOT.Weakness, &q.SWOT.Opportunity, &q.SWOT.Threat)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assumptions for %s/%s: %w", country, sector, err)
	}

	q.Regulated = regulated == 1
	q.Lifecycle = domain.LifecycleStage(lifecycle)

	return &q, nil
}

// Upsert inserts or updates the assumptions for a pair.
func (r *AssumptionsRepository) Upsert(country, sector string, q domain.QualitativeInputs) error {
	regulated := 0
	if q.Regulated {
		regulated = 1
	}

	query := `
		INSERT INTO sector_assumptions (country, sector, rd_intensity_pct, hhi,
			regulated, switching_cost, lifecycle,
			swot_strength, swot_weakness, swot_opportunity, swot_threat, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(country, sector) DO UPDATE SET
			rd_intensity_pct = excluded.rd_intensity_pct,
			hhi = excluded.hhi,
			regulated = excluded.regulated,
			switching_cost = excluded.switching_cost,
			lifecycle = excluded.lifecycle,
			swot_strength = excluded.swot_strength,
			swot_weakness = excluded.swot_weakness,
			swot_opportunity = excluded.swot_opportunity,
			swot_threat = excluded.swot_threat,
			updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, country, sector, q.RDIntensityPct, q.HHI,
		regulated, q.SwitchingCost, string(q.Lifecycle),
		q.SWOT.Strength, q.SWOT.Weakness, q.SWOT.Opportunity, q.SWOT.Threat)
	if err != nil {
		return fmt.Errorf("failed to upsert assumptions for %s/%s: %w", country, sector, err)
	}
	return nil
}
