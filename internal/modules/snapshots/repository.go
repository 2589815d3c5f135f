// Package snapshots persists completed scoring runs so past score states
// can be listed and replayed.
package snapshots

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/prism/internal/domain"
)

// Snapshot is the metadata of one persisted scoring run. The breakdowns
// themselves live in a msgpack payload column.
type Snapshot struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	WeightPreset string    `json:"weight_preset"`
	TierScheme   string    `json:"tier_scheme"`
	NumPairs     int       `json:"num_pairs"`
}

// Repository handles the scoring_runs table in snapshots.db.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshots repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshots").Logger(),
	}
}

// Save persists one scoring run and returns its generated id.
func (r *Repository) Save(weightPreset, tierScheme string, breakdowns []domain.ScoreBreakdown) (string, error) {
	payload, err := msgpack.Marshal(breakdowns)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot payload: %w", err)
	}

	id := uuid.New().String()
	query := `
		INSERT INTO scoring_runs (id, created_at, weight_preset, tier_scheme, num_pairs, payload)
		VALUES (?, datetime('now'), ?, ?, ?, ?)`

	if _, err := r.db.Exec(query, id, weightPreset, tierScheme, len(breakdowns), payload); err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}

	r.log.Info().Str("id", id).Int("pairs", len(breakdowns)).Msg("scoring run persisted")
	return id, nil
}

// Load returns a run's metadata and decoded breakdowns. A missing id
// returns nil metadata without an error.
func (r *Repository) Load(id string) (*Snapshot, []domain.ScoreBreakdown, error) {
	query := `
		SELECT id, created_at, weight_preset, tier_scheme, num_pairs, payload
		FROM scoring_runs WHERE id = ?`

	var snap Snapshot
	var createdAt string
	var payload []byte
	err := r.db.QueryRow(query, id).Scan(&snap.ID, &createdAt, &snap.WeightPreset,
		&snap.TierScheme, &snap.NumPairs, &payload)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query snapshot %s: %w", id, err)
	}

	snap.CreatedAt = parseTimestamp(createdAt)

	var breakdowns []domain.ScoreBreakdown
	if err := msgpack.Unmarshal(payload, &breakdowns); err != nil {
		return nil, nil, fmt.Errorf("failed to decode snapshot payload %s: %w", id, err)
	}

	return &snap, breakdowns, nil
}

// Latest returns the newest run, or nils when no run exists yet.
func (r *Repository) Latest() (*Snapshot, []domain.ScoreBreakdown, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM scoring_runs ORDER BY created_at DESC, id LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	return r.Load(id)
}

// List returns run metadata newest first, capped at limit.
func (r *Repository) List(limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, created_at, weight_preset, tier_scheme, num_pairs
		FROM scoring_runs
		ORDER BY created_at DESC, id
		LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt string
		if err := rows.Scan(&snap.ID, &createdAt, &snap.WeightPreset, &snap.TierScheme, &snap.NumPairs); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.CreatedAt = parseTimestamp(createdAt)
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snaps, nil
}

// Prune deletes all but the newest keep runs.
func (r *Repository) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}

	query := `
		DELETE FROM scoring_runs
		WHERE id NOT IN (
			SELECT id FROM scoring_runs ORDER BY created_at DESC, id LIMIT ?
		)`

	result, err := r.db.Exec(query, keep)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}

	if deleted, err := result.RowsAffected(); err == nil && deleted > 0 {
		r.log.Info().Int64("deleted", deleted).Msg("pruned old scoring runs")
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
