// Package db defines basic management of the PostgreSQL backend.
package db

import (
	"context"

	"github.com/gnames/gnloc/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages the connection to PostgreSQL. The pool is exposed for
// the schema manager and the location store, which run their own SQL.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the public schema has any tables.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	DropAllTables(ctx context.Context) error
}
