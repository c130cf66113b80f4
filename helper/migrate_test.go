package helper_test

import (
	"path/filepath"
	"testing"

	"hotel/config"
	"hotel/helper"
	"hotel/infras/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.DB.SQLite.Path = filepath.Join(t.TempDir(), "hotel.db")
	cfg.DB.SQLite.MigrationTable = "schema_migrations"
	cfg.DB.SQLite.BusyTimeoutMs = 1000

	return cfg
}

func usersTableExists(t *testing.T, cfg *config.Config) bool {
	t.Helper()

	db, err := sqlite.Open(cfg.DB.SQLite.Path, 1000, 1)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'users'"))

	return count == 1
}

func TestRunner(t *testing.T) {
	cfg := newConfig(t)

	require.NoError(t, helper.Up(cfg))
	assert.True(t, usersTableExists(t, cfg))

	require.NoError(t, helper.Up(cfg), "no change is not an error")

	require.NoError(t, helper.Down(cfg))
	assert.False(t, usersTableExists(t, cfg))

	require.NoError(t, helper.StepUp(cfg))
	assert.True(t, usersTableExists(t, cfg))
}

func TestRunner_UnknownAction(t *testing.T) {
	err := helper.Runner(newConfig(t), "sideways")
	assert.ErrorIs(t, err, helper.ErrUnknownAction)
}
