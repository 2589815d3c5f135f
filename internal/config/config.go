// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/prism/internal/modules/scoring"
)

// Config holds application configuration
type Config struct {
	DataDir          string // Base directory for all databases, always absolute
	Port             int
	LogLevel         string
	LogPretty        bool
	Workers          int     // parallelism of batch scoring
	WeightPreset     string  // active scoring weight preset
	TierScheme       string  // active holding tier scheme
	BenchmarkTicker  string  // benchmark for beta and correlation
	TargetPercentile float64 // default backsolve target
	SnapshotsToKeep  int     // scoring run retention
	SyncSchedule     string  // cron expression for universe sync
	RescoreSchedule  string  // cron expression for rescoring
}

// Load reads configuration from environment variables. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("PRISM_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:          absDataDir,
		Port:             getEnvAsInt("PRISM_PORT", 8080),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        getEnvAsBool("LOG_PRETTY", false),
		Workers:          getEnvAsInt("PRISM_WORKERS", 10),
		WeightPreset:     getEnv("PRISM_WEIGHT_PRESET", ""),
		TierScheme:       getEnv("PRISM_TIER_SCHEME", ""),
		BenchmarkTicker:  getEnv("PRISM_BENCHMARK", "SPY"),
		TargetPercentile: getEnvAsFloat("PRISM_TARGET_PERCENTILE", 0.60),
		SnapshotsToKeep:  getEnvAsInt("PRISM_SNAPSHOTS_TO_KEEP", 30),
		SyncSchedule:     getEnv("PRISM_SYNC_SCHEDULE", "0 5 * * *"),     // daily, pre-market
		RescoreSchedule:  getEnv("PRISM_RESCORE_SCHEDULE", "30 5 * * *"), // after sync
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the named presets exist and numeric knobs are sane.
// Failing here beats scoring a whole universe under a typoed preset.
func (c *Config) Validate() error {
	if _, err := scoring.WeightPreset(c.WeightPreset); err != nil {
		return fmt.Errorf("invalid PRISM_WEIGHT_PRESET: %w", err)
	}
	if _, err := scoring.TierPreset(c.TierScheme); err != nil {
		return fmt.Errorf("invalid PRISM_TIER_SCHEME: %w", err)
	}
	if c.TargetPercentile < 0 || c.TargetPercentile > 1 {
		return fmt.Errorf("PRISM_TARGET_PERCENTILE must be in [0, 1], got %v", c.TargetPercentile)
	}
	if c.Workers < 0 {
		return fmt.Errorf("PRISM_WORKERS must be non-negative, got %d", c.Workers)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
