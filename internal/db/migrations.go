package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/basura/basura-api/internal/model"
)

var migrationModels = []any{
	&model.User{},
	&model.Property{},
	&model.Client{},
	&model.GarbageAttribute{},
	&model.Entry{},
}

// Statements run after AutoMigrate. They must stay valid on both postgres and sqlite.
var migrationStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_entries_client_timestamp ON entries (client_id, timestamp);`,
	`CREATE INDEX IF NOT EXISTS idx_entries_creator_timestamp ON entries (created_by, timestamp);`,
	`CREATE INDEX IF NOT EXISTS idx_entries_natural_key ON entries (property_id, client_id, timestamp, created_by);`,
	`CREATE INDEX IF NOT EXISTS idx_clients_name ON clients (client_name);`,
	`CREATE INDEX IF NOT EXISTS idx_users_name_firstname ON users (name_firstname);`,
}

func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(migrationModels...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
