package countries

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/aristath/prism/internal/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE countries (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			gdp_billions REAL NOT NULL DEFAULT 0,
			gdp_per_capita REAL NOT NULL DEFAULT 0,
			gdp_growth REAL NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	require.NoError(t, err)

	return db
}

func TestRepository_MacroUnknown(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	m, err := repo.Macro("XX")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRepository_UpsertAndMacro(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	in := domain.CountryMacro{Code: "US", Name: "United States", GDPBillions: 27360, GDPPerCapita: 81695, GDPGrowth: 2.5}
	require.NoError(t, repo.Upsert(in))

	got, err := repo.Macro("US")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in, *got)

	in.GDPGrowth = 1.8
	require.NoError(t, repo.Upsert(in))

	got, err = repo.Macro("US")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 1.8, got.GDPGrowth, 1e-9)
}

func TestRepository_SeedDefaults(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	// A manually curated row survives seeding
	require.NoError(t, repo.Upsert(domain.CountryMacro{Code: "US", Name: "Custom", GDPBillions: 1, GDPPerCapita: 1, GDPGrowth: 1}))

	require.NoError(t, repo.SeedDefaults())

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, len(defaultMacros))

	us, err := repo.Macro("US")
	require.NoError(t, err)
	require.NotNil(t, us)
	assert.Equal(t, "Custom", us.Name)

	// Seeding again is a no-op
	require.NoError(t, repo.SeedDefaults())
	all, err = repo.All()
	require.NoError(t, err)
	assert.Len(t, all, len(defaultMacros))
}
