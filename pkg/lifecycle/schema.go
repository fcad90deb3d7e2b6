package lifecycle

import (
	"context"

	"github.com/gnames/gnloc/pkg/config"
)

// SchemaManager creates and migrates the location tables of the
// PostgreSQL backend. It uses GORM AutoMigrate, so both operations are
// idempotent.
type SchemaManager interface {
	// Create creates the location tables. Existing tables are dropped
	// first only when the caller confirmed it through DropAllTables.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the tables to the latest models.
	Migrate(ctx context.Context, cfg *config.Config) error
}
