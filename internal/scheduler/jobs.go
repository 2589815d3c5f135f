package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/evaluation"
	"github.com/aristath/prism/internal/evaluation/workers"
	"github.com/aristath/prism/internal/modules/snapshots"
	"github.com/aristath/prism/internal/modules/universe"
)

// SyncJob refreshes the universe from the market data feed.
type SyncJob struct {
	Sync *universe.SyncService
}

// Name returns the job name
func (j *SyncJob) Name() string { return "universe-sync" }

// Run executes one sync pass.
func (j *SyncJob) Run() error {
	report, err := j.Sync.SyncAll()
	if err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("sync finished with %d failed tickers", len(report.Failed))
	}
	return nil
}

// RescoreJob scores every known (country, sector) pair and persists the
// result as a new snapshot.
type RescoreJob struct {
	Securities   *universe.SecurityRepository
	Evaluator    *evaluation.Evaluator
	Snapshots    *snapshots.Repository
	WeightPreset string
	TierScheme   string
	KeepRuns     int
	Log          zerolog.Logger
}

// Name returns the job name
func (j *RescoreJob) Name() string { return "rescore" }

// Run executes one full scoring pass.
func (j *RescoreJob) Run() error {
	pairs, err := j.Securities.Pairs()
	if err != nil {
		return fmt.Errorf("failed to list pairs: %w", err)
	}
	if len(pairs) == 0 {
		j.Log.Warn().Msg("no pairs to score, skipping rescore")
		return nil
	}

	jobs := make([]workers.ScoreJob, len(pairs))
	for i, p := range pairs {
		jobs[i] = workers.ScoreJob{Country: p.Country, Sector: p.Sector}
	}

	breakdowns := j.Evaluator.EvaluateAll(jobs, nil)

	id, err := j.Snapshots.Save(j.WeightPreset, j.TierScheme, breakdowns)
	if err != nil {
		return err
	}
	j.Log.Info().Str("snapshot", id).Int("pairs", len(breakdowns)).Msg("rescore complete")

	return j.Snapshots.Prune(j.KeepRuns)
}
