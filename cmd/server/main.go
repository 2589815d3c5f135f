// PRISM scores (country, sector) pairs on fundamentals, market structure,
// behavior and macro context, and checks portfolios against those scores.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/clients/yahoo"
	"github.com/aristath/prism/internal/config"
	"github.com/aristath/prism/internal/database"
	"github.com/aristath/prism/internal/evaluation"
	"github.com/aristath/prism/internal/modules/alignment"
	alignmenthandlers "github.com/aristath/prism/internal/modules/alignment/handlers"
	"github.com/aristath/prism/internal/modules/countries"
	countryhandlers "github.com/aristath/prism/internal/modules/countries/handlers"
	"github.com/aristath/prism/internal/modules/scoring"
	scoringhandlers "github.com/aristath/prism/internal/modules/scoring/api/handlers"
	"github.com/aristath/prism/internal/modules/snapshots"
	"github.com/aristath/prism/internal/modules/universe"
	universehandlers "github.com/aristath/prism/internal/modules/universe/handlers"
	"github.com/aristath/prism/internal/scheduler"
	"github.com/aristath/prism/internal/server"
	"github.com/aristath/prism/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		panic(err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	log.Info().Str("data_dir", cfg.DataDir).Msg("starting prism")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("fatal error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	// Databases
	universeDB, err := openDB(cfg.DataDir, "universe", database.ProfileStandard)
	if err != nil {
		return err
	}
	defer universeDB.Close()

	pricesDB, err := openDB(cfg.DataDir, "prices", database.ProfileCache)
	if err != nil {
		return err
	}
	defer pricesDB.Close()

	countriesDB, err := openDB(cfg.DataDir, "countries", database.ProfileStandard)
	if err != nil {
		return err
	}
	defer countriesDB.Close()

	snapshotsDB, err := openDB(cfg.DataDir, "snapshots", database.ProfileStandard)
	if err != nil {
		return err
	}
	defer snapshotsDB.Close()

	// Repositories
	securityRepo := universe.NewSecurityRepository(universeDB.Conn(), log)
	fundamentalsRepo := universe.NewFundamentalsRepository(universeDB.Conn(), log)
	priceRepo := universe.NewPriceRepository(pricesDB.Conn(), log)
	assumptionsRepo := universe.NewAssumptionsRepository(universeDB.Conn(), log)
	countryRepo := countries.NewRepository(countriesDB.Conn(), log)
	snapshotRepo := snapshots.NewRepository(snapshotsDB.Conn(), log)

	if err := countryRepo.SeedDefaults(); err != nil {
		return err
	}

	// Scoring pipeline
	weights, err := scoring.WeightPreset(cfg.WeightPreset)
	if err != nil {
		return err
	}
	tiers, err := scoring.TierPreset(cfg.TierScheme)
	if err != nil {
		return err
	}
	composite, err := scoring.NewCompositeScorer(weights, tiers)
	if err != nil {
		return err
	}

	evaluator := evaluation.New(
		evaluation.Providers{
			Prices:       priceRepo,
			Fundamentals: fundamentalsRepo,
			Constituents: securityRepo,
			Countries:    countryRepo,
			Assumptions:  assumptionsRepo,
		},
		composite,
		log,
		evaluation.WithBenchmark(cfg.BenchmarkTicker),
		evaluation.WithWorkers(cfg.Workers),
	)

	alignEngine, err := alignment.NewEngine(tiers, scoring.TierPortfolio, log)
	if err != nil {
		return err
	}

	// Market data sync
	yahooClient := yahoo.NewClient(log)
	syncService := universe.NewSyncService(securityRepo, fundamentalsRepo, priceRepo,
		yahooClient, cfg.BenchmarkTicker, log)

	// Background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.SyncSchedule, &scheduler.SyncJob{Sync: syncService}); err != nil {
		return err
	}
	rescoreJob := &scheduler.RescoreJob{
		Securities:   securityRepo,
		Evaluator:    evaluator,
		Snapshots:    snapshotRepo,
		WeightPreset: weights.Name,
		TierScheme:   tiers.Name,
		KeepRuns:     cfg.SnapshotsToKeep,
		Log:          log,
	}
	if err := sched.AddJob(cfg.RescoreSchedule, rescoreJob); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Log:         log,
		Port:        cfg.Port,
		UniverseDB:  universeDB,
		PricesDB:    pricesDB,
		CountriesDB: countriesDB,
		SnapshotsDB: snapshotsDB,
		ScoringHandlers: scoringhandlers.NewHandler(evaluator, securityRepo, priceRepo,
			assumptionsRepo, snapshotRepo, weights.Name, tiers.Name, cfg.BenchmarkTicker, log),
		AlignmentHandlers: alignmenthandlers.NewHandler(alignEngine, snapshotRepo,
			weights, cfg.TargetPercentile, log),
		UniverseHandlers: universehandlers.NewHandler(securityRepo, assumptionsRepo, syncService, log),
		CountryHandlers:  countryhandlers.NewHandler(countryRepo, log),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func openDB(dataDir, name string, profile database.Profile) (*database.DB, error) {
	db, err := database.New(database.Config{
		Path:    filepath.Join(dataDir, name+".db"),
		Profile: profile,
		Name:    name,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		return nil, err
	}
	return db, nil
}
