package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/tripflow/backend/internal/domain"
	"github.com/tripflow/backend/internal/store"
)

// qrMaxPayloadBytes is the binary capacity of a version-40 QR code at the
// low error-correction level used for trip sharing. Payloads above this
// cannot be encoded by any QR version; the export fails with ErrCapacity
// instead of truncating.
const qrMaxPayloadBytes = 2953

// importedNameSuffix is appended to a trip's name on single-trip import so
// the copy is distinguishable from a trip the user created themselves.
const importedNameSuffix = " (imported)"

// exportFilePrefix starts every full-export file name; the rest is the
// current epoch-millis plus ".json".
const exportFilePrefix = "TripFlow_Export_"

// BackupService is the import/export reconciler: it produces portable JSON
// snapshots and merges incoming ones into the store without id collisions
// or dangling references.
type BackupService struct {
	store     *store.Store
	ids       store.IDSource
	exportDir string
	now       func() time.Time
}

// NewBackupService constructs a BackupService. ids should be the same
// source the store uses so minted ids share one namespace. A nil now falls
// back to time.Now; tests pass a fixed clock for stable export file names.
func NewBackupService(st *store.Store, ids store.IDSource, exportDir string, now func() time.Time) *BackupService {
	if now == nil {
		now = time.Now
	}
	return &BackupService{store: st, ids: ids, exportDir: exportDir, now: now}
}

// ---- export ----------------------------------------------------------------

// ExportFull bundles the selected trips and all their items as a FullBackup
// and returns the serialized JSON. Every id must resolve to a stored trip;
// an unknown id fails the whole export with domain.ErrNotFound.
func (s *BackupService) ExportFull(ctx context.Context, tripIDs []string) ([]byte, error) {
	if len(tripIDs) == 0 {
		return nil, fmt.Errorf("service.BackupService.ExportFull: %w: no trips selected", domain.ErrValidation)
	}

	backup := domain.FullBackup{Trips: []domain.Trip{}, Itineraries: []domain.ItineraryItem{}}
	for _, id := range tripIDs {
		trip, err := s.store.TripByID(id)
		if err != nil {
			return nil, fmt.Errorf("service.BackupService.ExportFull: trip %s: %w", id, err)
		}
		backup.Trips = append(backup.Trips, trip)
		backup.Itineraries = append(backup.Itineraries, s.store.ItemsByTrip(id)...)
	}

	data, err := json.Marshal(backup)
	if err != nil {
		return nil, fmt.Errorf("service.BackupService.ExportFull: marshal: %w", err)
	}
	return data, nil
}

// ExportFullToFile writes the FullBackup of the selected trips to the
// export directory and returns the file path. The file is written to a
// temporary name and renamed into place, so a failed write leaves no
// partial file behind.
func (s *BackupService) ExportFullToFile(ctx context.Context, tripIDs []string) (string, error) {
	data, err := s.ExportFull(ctx, tripIDs)
	if err != nil {
		return "", err
	}

	name := exportFilePrefix + strconv.FormatInt(s.now().UnixMilli(), 10) + ".json"
	path := filepath.Join(s.exportDir, name)

	tmp, err := os.CreateTemp(s.exportDir, name+".tmp*")
	if err != nil {
		return "", fmt.Errorf("service.BackupService.ExportFullToFile: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("service.BackupService.ExportFullToFile: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("service.BackupService.ExportFullToFile: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("service.BackupService.ExportFullToFile: rename: %w", err)
	}

	return path, nil
}

// ExportTrip bundles one trip and its items as a TripBackup and returns the
// serialized JSON. Fails with domain.ErrCapacity when the payload would not
// fit a QR code — the data is never truncated to fit.
func (s *BackupService) ExportTrip(ctx context.Context, tripID string) ([]byte, error) {
	trip, err := s.store.TripByID(tripID)
	if err != nil {
		return nil, fmt.Errorf("service.BackupService.ExportTrip: %w", err)
	}

	backup := domain.TripBackup{Meta: trip, Content: s.store.ItemsByTrip(tripID)}
	data, err := json.Marshal(backup)
	if err != nil {
		return nil, fmt.Errorf("service.BackupService.ExportTrip: marshal: %w", err)
	}

	if len(data) > qrMaxPayloadBytes {
		return nil, fmt.Errorf("service.BackupService.ExportTrip: %d bytes: %w", len(data), domain.ErrCapacity)
	}
	return data, nil
}

// EncodeTripQR renders the trip's backup payload as a QR code PNG of
// sizePx × sizePx pixels.
func (s *BackupService) EncodeTripQR(ctx context.Context, tripID string, sizePx int) ([]byte, error) {
	data, err := s.ExportTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(string(data), qrcode.Low, sizePx)
	if err != nil {
		// ExportTrip bounds the payload, but the encoder has the final say
		// on what fits a symbol.
		return nil, fmt.Errorf("service.BackupService.EncodeTripQR: %w: %v", domain.ErrCapacity, err)
	}
	return png, nil
}

// ---- import ----------------------------------------------------------------

// ImportFull parses data as a FullBackup and merges it into the store.
// Every incoming trip gets a freshly minted id; items are remapped onto the
// new trip ids with fresh ids of their own. Items whose tripId matches no
// trip in the backup are orphans and are silently dropped. Returns the
// number of trips imported. On any failure the store is left untouched.
func (s *BackupService) ImportFull(ctx context.Context, data []byte) (int, error) {
	var backup domain.FullBackup
	if err := json.Unmarshal(data, &backup); err != nil {
		return 0, fmt.Errorf("service.BackupService.ImportFull: %w: %v", domain.ErrFormat, err)
	}

	idMapping := make(map[string]string, len(backup.Trips))
	newTrips := make([]domain.Trip, 0, len(backup.Trips))
	for _, trip := range backup.Trips {
		newID := s.ids.TripID()
		idMapping[trip.ID] = newID
		trip.ID = newID
		newTrips = append(newTrips, trip)
	}

	newItems := make([]domain.ItineraryItem, 0, len(backup.Itineraries))
	for _, item := range backup.Itineraries {
		newTripID, ok := idMapping[item.TripID]
		if !ok {
			continue // orphan — no trip in this backup owns it
		}
		item.ID = domain.FlexID(s.ids.ItemID())
		item.TripID = newTripID
		item.Category = domain.ParseCategory(string(item.Category))
		newItems = append(newItems, item)
	}

	if err := s.store.Merge(ctx, newTrips, newItems); err != nil {
		return 0, fmt.Errorf("service.BackupService.ImportFull: %w", err)
	}
	return len(newTrips), nil
}

// ImportTrip parses data as a TripBackup (the payload a scanned or decoded
// QR code yields) and merges it as one new trip. The trip's name gains the
// " (imported)" suffix and every item is remapped onto the fresh trip id.
func (s *BackupService) ImportTrip(ctx context.Context, data []byte) (domain.Trip, error) {
	var backup domain.TripBackup
	if err := json.Unmarshal(data, &backup); err != nil {
		return domain.Trip{}, fmt.Errorf("service.BackupService.ImportTrip: %w: %v", domain.ErrFormat, err)
	}

	trip := backup.Meta
	trip.ID = s.ids.TripID()
	trip.Name += importedNameSuffix

	items := make([]domain.ItineraryItem, 0, len(backup.Content))
	for _, item := range backup.Content {
		item.ID = domain.FlexID(s.ids.ItemID())
		item.TripID = trip.ID
		item.Category = domain.ParseCategory(string(item.Category))
		items = append(items, item)
	}

	if err := s.store.Merge(ctx, []domain.Trip{trip}, items); err != nil {
		return domain.Trip{}, fmt.Errorf("service.BackupService.ImportTrip: %w", err)
	}
	return trip, nil
}
