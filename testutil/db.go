// Package testutil provides shared helpers for tests that need a real
// database. SQLite needs no external service, so unlike a client-server
// setup nothing here ever skips — every test gets its own migrated
// throwaway database file under t.TempDir.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"

	"github.com/tripflow/backend/internal/repo"
	"github.com/tripflow/backend/migrations"
)

// NewDB opens a migrated SQLite database in a per-test temporary directory.
// The file is removed with the directory when the test (and all its
// subtests) finish; the connection is closed automatically.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tripflow_test.db")

	db, err := repo.Open(path)
	if err != nil {
		t.Fatalf("testutil.NewDB: open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		t.Fatalf("testutil.NewDB: goose provider: %v", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		t.Fatalf("testutil.NewDB: migrate: %v", err)
	}

	return db
}
