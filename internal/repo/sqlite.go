// Package repo contains all database access logic for the TripFlow backend.
// The persisted state is deliberately tiny: two JSON-encoded blobs in a
// key-value table. No business logic lives here — only SQL and (de)serialization.
package repo

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

// Open creates or opens the SQLite database at path and applies the pragmas
// a single-process local store needs:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// SQLite supports one writer at a time, so the pool is capped at a single
// connection to avoid SQLITE_BUSY errors. Schema is managed separately via
// goose (see the migrations package).
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("repo.Open: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.Open: ping: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("repo.Open: %s: %w", pragma, err)
		}
	}

	return db, nil
}
