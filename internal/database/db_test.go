package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConnectionString_Profiles(t *testing.T) {
	standard := buildConnectionString("/tmp/universe.db", ProfileStandard)
	assert.Contains(t, standard, "_pragma=journal_mode(WAL)")
	assert.Contains(t, standard, "_pragma=synchronous(NORMAL)")
	assert.Contains(t, standard, "_pragma=auto_vacuum(INCREMENTAL)")

	cache := buildConnectionString("/tmp/prices.db", ProfileCache)
	assert.Contains(t, cache, "_pragma=journal_mode(WAL)")
	assert.Contains(t, cache, "_pragma=synchronous(OFF)")
	assert.Contains(t, cache, "_pragma=auto_vacuum(FULL)")
}

func TestNew_DefaultsToStandardProfile(t *testing.T) {
	db, err := New(Config{
		Path: filepath.Join(t.TempDir(), "universe.db"),
		Name: "universe",
	})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, ProfileStandard, db.profile)
}

func TestMigrate_PricesStoreUnderCacheProfile(t *testing.T) {
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "prices.db"),
		Profile: ProfileCache,
		Name:    "prices",
	})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())

	_, err = db.Conn().Exec(`INSERT INTO price_history (ticker, date, close, volume) VALUES ('AAPL', '2026-01-02', 101.5, 1000)`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Conn().QueryRow(`SELECT COUNT(*) FROM price_history`).Scan(&count))
	assert.Equal(t, 1, count)

	// Re-applying the schema is a no-op
	require.NoError(t, db.Migrate())
}

func TestMigrate_UniverseStore(t *testing.T) {
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "universe.db"),
		Profile: ProfileStandard,
		Name:    "universe",
	})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())

	// The universe schema no longer carries price bars
	for _, table := range []string{"securities", "fundamentals", "sector_assumptions"} {
		var name string
		err := db.Conn().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
	var name string
	err = db.Conn().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'price_history'`).Scan(&name)
	require.Error(t, err)
}
