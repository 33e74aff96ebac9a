package db

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basura/basura-api/internal/config"
)

func TestNewSQLiteRunsMigrations(t *testing.T) {
	cfg := &config.Config{
		Environment: "test",
		DB:          config.DBConfig{Driver: config.DriverSQLite, DSN: ":memory:"},
	}

	database, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })

	for _, table := range []string{"users", "properties", "clients", "garbage_attributes", "entries"} {
		assert.True(t, database.Migrator().HasTable(table), table)
	}
	assert.True(t, database.Migrator().HasIndex("entries", "idx_entries_client_timestamp"))

	require.NoError(t, runMigrations(database), "migrations must be idempotent")
}

func TestNewRejectsMongoDriver(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverMongo}}

	_, err := New(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestConfigurePoolRejectsBadLifetime(t *testing.T) {
	cfg := &config.Config{
		Environment: "test",
		DB:          config.DBConfig{Driver: config.DriverSQLite, DSN: ":memory:"},
	}
	database, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })

	err = configurePool(database, config.DBConfig{Driver: config.DriverPostgres, ConnMaxLifetime: "soon"})
	assert.Error(t, err)
}
