// Package iotesting provides shared helpers for integration tests.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gnames/gnloc/internal/iodb"
	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/db"
)

const (
	// TestDatabaseName is the database used by all integration tests.
	// Tests never touch the configured production database.
	TestDatabaseName = "gnloc_test"
)

// GetTestConfig returns a configuration for integration tests. Database
// credentials can be overridden with GNLOC_DATABASE_HOST, _PORT, _USER
// and _PASSWORD, the database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	var opts []config.Option
	if v := os.Getenv("GNLOC_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("GNLOC_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("GNLOC_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("GNLOC_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))

	cfg := config.New()
	cfg.Update(opts)
	return cfg
}

// GetTestDatabaseConfig returns only the database part of GetTestConfig.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SetupTempHome returns a config whose HomeDir is a temporary directory,
// so tests never write into the real ~/.config, ~/.cache or logs.
func SetupTempHome(t *testing.T) *config.Config {
	t.Helper()
	cfg := GetTestConfig()
	cfg.Update([]config.Option{config.OptHomeDir(t.TempDir())})
	return cfg
}

// ConnectTestDB connects to the test database or skips the test when
// PostgreSQL is not reachable or tests run with -short.
func ConnectTestDB(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, GetTestDatabaseConfig()); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })
	return op
}
