package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/basura/basura-api/internal/config"
	"github.com/basura/basura-api/internal/db"
	"github.com/basura/basura-api/internal/repository"
	"github.com/basura/basura-api/internal/repository/mongostore"
	"github.com/basura/basura-api/internal/service"
)

// Backend is an opened store plus the function that releases it.
type Backend struct {
	Repositories service.Repositories
	Close        func(ctx context.Context) error
}

// Open connects the backend selected by DB_DRIVER and prepares its schema or indexes.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	if cfg.DB.Driver == config.DriverMongo {
		return openMongo(ctx, cfg, log)
	}

	database, err := db.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Repositories: service.Repositories{
			Users:      repository.NewUserRepository(database),
			Properties: repository.NewPropertyRepository(database),
			Clients:    repository.NewClientRepository(database),
			Attributes: repository.NewAttributeRepository(database),
			Entries:    repository.NewEntryRepository(database),
		},
		Close: func(context.Context) error { return db.Close(database) },
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	store, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("ensure mongo indexes: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	return &Backend{
		Repositories: service.Repositories{
			Users:      store.Users(),
			Properties: store.Properties(),
			Clients:    store.Clients(),
			Attributes: store.Attributes(),
			Entries:    store.Entries(),
		},
		Close: store.Close,
	}, nil
}
