package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tripflow/backend/internal/domain"
)

// Storage keys for the two collection blobs. Fixed — they are part of the
// persisted state contract shared with the mobile clients' preference store.
const (
	keyTrips       = "trips_json"
	keyItineraries = "itineraries_json"
)

// Snapshots defines the persistence operations for the full application
// state. The store depends on this interface, not the concrete SQLite
// implementation, which allows it to be unit-tested with a fake.
type Snapshots interface {
	// Load reads both collections. A missing key yields an empty collection.
	// A malformed blob also yields an empty collection, plus an error
	// wrapping domain.ErrFormat — callers log it and continue; a corrupt
	// store must never prevent startup.
	Load(ctx context.Context) ([]domain.Trip, []domain.ItineraryItem, error)

	// Save serializes and writes both collections in a single transaction,
	// so the two blobs can never diverge from each other on disk.
	Save(ctx context.Context, trips []domain.Trip, items []domain.ItineraryItem) error
}

// sqliteSnapshots is the SQLite implementation of Snapshots.
type sqliteSnapshots struct {
	db *sql.DB
}

// NewSnapshots constructs a Snapshots backed by the provided database.
func NewSnapshots(db *sql.DB) Snapshots {
	return &sqliteSnapshots{db: db}
}

func (r *sqliteSnapshots) Load(ctx context.Context) ([]domain.Trip, []domain.ItineraryItem, error) {
	trips := []domain.Trip{}
	items := []domain.ItineraryItem{}
	var loadErr error

	if err := r.loadKey(ctx, keyTrips, &trips); err != nil {
		trips = []domain.Trip{}
		loadErr = errors.Join(loadErr, err)
	}
	if err := r.loadKey(ctx, keyItineraries, &items); err != nil {
		items = []domain.ItineraryItem{}
		loadErr = errors.Join(loadErr, err)
	}

	return trips, items, loadErr
}

// loadKey reads one blob into dest. A missing row leaves dest untouched and
// returns nil; a malformed blob returns an error wrapping domain.ErrFormat.
func (r *sqliteSnapshots) loadKey(ctx context.Context, key string, dest any) error {
	const q = `SELECT value FROM kv WHERE key = ?`

	var raw string
	err := r.db.QueryRowContext(ctx, q, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("repo.Snapshots.Load: %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("repo.Snapshots.Load: %s: %w: %v", key, domain.ErrFormat, err)
	}
	return nil
}

func (r *sqliteSnapshots) Save(ctx context.Context, trips []domain.Trip, items []domain.ItineraryItem) error {
	// Marshal before opening the transaction — a serialization failure must
	// leave the previous on-disk state fully intact.
	tripsJSON, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("repo.Snapshots.Save: marshal trips: %w", err)
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("repo.Snapshots.Save: marshal itineraries: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repo.Snapshots.Save: begin: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := tx.ExecContext(ctx, q, keyTrips, string(tripsJSON)); err != nil {
		return fmt.Errorf("repo.Snapshots.Save: %s: %w", keyTrips, err)
	}
	if _, err := tx.ExecContext(ctx, q, keyItineraries, string(itemsJSON)); err != nil {
		return fmt.Errorf("repo.Snapshots.Save: %s: %w", keyItineraries, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repo.Snapshots.Save: commit: %w", err)
	}
	return nil
}
