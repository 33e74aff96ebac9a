package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basura/basura-api/internal/config"
	"github.com/basura/basura-api/internal/model"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, DSN: ":memory:"}}

	backend, err := Open(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close(ctx) })

	require.NoError(t, backend.Repositories.Attributes.Create(ctx, &model.GarbageAttribute{AttributeName: "glass", Color: "#0f0"}))
	list, err := backend.Repositories.Attributes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{Driver: "oracle", DSN: "x"}}
	_, err := Open(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
