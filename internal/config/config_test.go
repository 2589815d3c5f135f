package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PRISM_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, "", cfg.WeightPreset)
	assert.Equal(t, "", cfg.TierScheme)
	assert.Equal(t, "SPY", cfg.BenchmarkTicker)
	assert.InDelta(t, 0.60, cfg.TargetPercentile, 1e-9)
	assert.Equal(t, 30, cfg.SnapshotsToKeep)
	assert.Equal(t, "0 5 * * *", cfg.SyncSchedule)
	assert.Equal(t, "30 5 * * *", cfg.RescoreSchedule)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PRISM_DATA_DIR", t.TempDir())
	t.Setenv("PRISM_PORT", "9090")
	t.Setenv("PRISM_WORKERS", "4")
	t.Setenv("PRISM_WEIGHT_PRESET", "quality-tilt")
	t.Setenv("PRISM_TIER_SCHEME", "portfolio")
	t.Setenv("PRISM_TARGET_PERCENTILE", "0.75")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "quality-tilt", cfg.WeightPreset)
	assert.Equal(t, "portfolio", cfg.TierScheme)
	assert.InDelta(t, 0.75, cfg.TargetPercentile, 1e-9)
	assert.True(t, cfg.LogPretty)
}

func TestLoad_UnknownWeightPreset(t *testing.T) {
	t.Setenv("PRISM_DATA_DIR", t.TempDir())
	t.Setenv("PRISM_WEIGHT_PRESET", "nope")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRISM_WEIGHT_PRESET")
}

func TestLoad_UnknownTierScheme(t *testing.T) {
	t.Setenv("PRISM_DATA_DIR", t.TempDir())
	t.Setenv("PRISM_TIER_SCHEME", "nope")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRISM_TIER_SCHEME")
}

func TestValidate_TargetPercentileBounds(t *testing.T) {
	cfg := &Config{TargetPercentile: 1.5}
	require.Error(t, cfg.Validate())

	cfg.TargetPercentile = 0.5
	require.NoError(t, cfg.Validate())
}
