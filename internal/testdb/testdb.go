// Package testdb provides utilities for tests that need a real PostgreSQL
// database. Tests using it skip automatically when no database URL is
// configured, so the ordinary unit test run never needs external services.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/hsong/blogd/internal/platform/postgres"
)

// Environment variables checked, in order, for the test database URL.
var urlEnvVars = []string{"BLOGD_TEST_DB_URL", "DATABASE_URL"}

var migrateOnce sync.Once

// URL returns the configured test database URL, or an empty string when
// integration tests cannot run.
func URL() string {
	for _, envVar := range urlEnvVars {
		if url := os.Getenv(envVar); url != "" {
			return url
		}
	}
	return ""
}

// Get opens the test database and applies migrations, skipping the test when
// no database URL is configured. The connection is closed via t.Cleanup.
func Get(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skip("set BLOGD_TEST_DB_URL or DATABASE_URL to run database tests")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	migrateOnce.Do(func() {
		if migrateErr := applyMigrations(db); migrateErr != nil {
			err = migrateErr
		}
	})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// can write freely without affecting each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin test transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}

func applyMigrations(db *sql.DB) error {
	goose.SetBaseFS(postgres.MigrationsFS)
	goose.SetTableName("schema_migrations")
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
