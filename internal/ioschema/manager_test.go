package ioschema

import (
	"context"
	"testing"

	"github.com/gnames/gnloc/internal/iodb"
	"github.com/gnames/gnloc/internal/iotesting"
	"github.com/gnames/gnloc/pkg/lifecycle"
	"github.com/gnames/gnloc/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerImplementsInterface(t *testing.T) {
	var _ lifecycle.SchemaManager = NewManager(iodb.NewPgxOperator())
}

func TestNameIndexSQL(t *testing.T) {
	assert.Equal(t,
		`CREATE INDEX IF NOT EXISTS "cities_lower_name_idx" ON "cities" (lower(name))`,
		nameIndexSQL("cities"))
}

func TestCreateNotConnected(t *testing.T) {
	mgr := NewManager(iodb.NewPgxOperator())
	cfg := iotesting.GetTestConfig()
	assert.Error(t, mgr.Create(context.Background(), cfg))
	assert.Error(t, mgr.Migrate(context.Background(), cfg))
}

func TestCreateIntegration(t *testing.T) {
	op := iotesting.ConnectTestDB(t)
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	require.NoError(t, op.DropAllTables(ctx))
	mgr := NewManager(op)
	require.NoError(t, mgr.Create(ctx, cfg))
	// second run is a no-op
	require.NoError(t, mgr.Migrate(ctx, cfg))

	for _, table := range schema.NameIndexTables() {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}
}
