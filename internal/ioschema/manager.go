// Package ioschema implements lifecycle.SchemaManager with GORM
// AutoMigrate over the pgx connection pool.
package ioschema

import (
	"context"
	"fmt"

	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/db"
	"github.com/gnames/gnloc/pkg/lifecycle"
	"github.com/gnames/gnloc/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates location tables and case-insensitive name indexes.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	return m.createNameIndexes(ctx)
}

// Migrate updates location tables to the latest models.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return m.createNameIndexes(ctx)
}

func (m *manager) gorm() (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}

// createNameIndexes adds lower(name) indexes used by case-insensitive
// lookups, for example of a country given on the command line.
func (m *manager) createNameIndexes(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	for _, table := range schema.NameIndexTables() {
		q := nameIndexSQL(table)
		if _, err := pool.Exec(ctx, q); err != nil {
			return NameIndexError(table, err)
		}
	}
	return nil
}

func nameIndexSQL(table string) string {
	return fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s (lower(name))",
		pgx.Identifier{table + "_lower_name_idx"}.Sanitize(),
		pgx.Identifier{table}.Sanitize(),
	)
}
