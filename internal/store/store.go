// Package store holds the authoritative in-memory collections for the
// running process. Every mutation persists through the repo before it is
// committed to memory, so the store and the database can never silently
// diverge: a failed save leaves both unchanged and the error is returned to
// the caller.
//
// The store is the only component allowed to break or preserve the
// referential invariant "every item's TripID references a stored trip" —
// AddItem/UpdateItem reject dangling references and DeleteTrip cascades.
package store

import (
	"context"
	"sync"

	"github.com/tripflow/backend/internal/domain"
	"github.com/tripflow/backend/internal/repo"
)

// Store is the single source of truth for trips and itinerary items.
// Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	snaps repo.Snapshots
	ids   IDSource
	trips []domain.Trip
	items []domain.ItineraryItem
	subs  []func()
}

// New constructs a Store over collections previously loaded via
// repo.Snapshots.Load. The caller owns load-error handling (log and boot
// empty); the store only ever sees well-formed collections.
func New(snaps repo.Snapshots, ids IDSource, trips []domain.Trip, items []domain.ItineraryItem) *Store {
	return &Store{
		snaps: snaps,
		ids:   ids,
		trips: append([]domain.Trip(nil), trips...),
		items: append([]domain.ItineraryItem(nil), items...),
	}
}

// Subscribe registers fn to run after every successful mutation. Callbacks
// run outside the store lock, in registration order. Used by the UI
// collaborator to re-render on change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// ---- reads -----------------------------------------------------------------

// Trips returns a copy of all trips in creation order.
func (s *Store) Trips() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Trip(nil), s.trips...)
}

// Items returns a copy of all itinerary items.
func (s *Store) Items() []domain.ItineraryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ItineraryItem(nil), s.items...)
}

// TripByID returns the trip with the given id, or domain.ErrNotFound.
func (s *Store) TripByID(id string) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.trips {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trip{}, domain.ErrNotFound
}

// ItemsByTrip returns all items belonging to the given trip.
func (s *Store) ItemsByTrip(tripID string) []domain.ItineraryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.ItineraryItem{}
	for _, it := range s.items {
		if it.TripID == tripID {
			out = append(out, it)
		}
	}
	return out
}

// ---- trip mutations --------------------------------------------------------

// AddTrip mints an id for trip, persists, and appends it.
func (s *Store) AddTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	s.mu.Lock()
	trip.ID = s.ids.TripID()
	next := append(append([]domain.Trip(nil), s.trips...), trip)

	if err := s.snaps.Save(ctx, next, s.items); err != nil {
		s.mu.Unlock()
		return domain.Trip{}, err
	}
	s.trips = next
	s.mu.Unlock()

	s.notify()
	return trip, nil
}

// UpdateTrip replaces the stored trip matching trip.ID.
// Returns domain.ErrNotFound if no such trip exists.
func (s *Store) UpdateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	s.mu.Lock()
	idx := -1
	for i, t := range s.trips {
		if t.ID == trip.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.Trip{}, domain.ErrNotFound
	}

	next := append([]domain.Trip(nil), s.trips...)
	next[idx] = trip

	if err := s.snaps.Save(ctx, next, s.items); err != nil {
		s.mu.Unlock()
		return domain.Trip{}, err
	}
	s.trips = next
	s.mu.Unlock()

	s.notify()
	return trip, nil
}

// DeleteTrip removes the trip and every item referencing it.
// Returns domain.ErrNotFound if no such trip exists.
func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	nextTrips := make([]domain.Trip, 0, len(s.trips))
	found := false
	for _, t := range s.trips {
		if t.ID == id {
			found = true
			continue
		}
		nextTrips = append(nextTrips, t)
	}
	if !found {
		s.mu.Unlock()
		return domain.ErrNotFound
	}

	nextItems := make([]domain.ItineraryItem, 0, len(s.items))
	for _, it := range s.items {
		if it.TripID != id {
			nextItems = append(nextItems, it)
		}
	}

	if err := s.snaps.Save(ctx, nextTrips, nextItems); err != nil {
		s.mu.Unlock()
		return err
	}
	s.trips = nextTrips
	s.items = nextItems
	s.mu.Unlock()

	s.notify()
	return nil
}

// ---- item mutations --------------------------------------------------------

// AddItem mints an id for item, persists, and appends it.
// Returns domain.ErrValidation if item.TripID references no stored trip.
func (s *Store) AddItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	s.mu.Lock()
	if !s.tripExistsLocked(item.TripID) {
		s.mu.Unlock()
		return domain.ItineraryItem{}, domain.ErrValidation
	}

	item.ID = domain.FlexID(s.ids.ItemID())
	next := append(append([]domain.ItineraryItem(nil), s.items...), item)

	if err := s.snaps.Save(ctx, s.trips, next); err != nil {
		s.mu.Unlock()
		return domain.ItineraryItem{}, err
	}
	s.items = next
	s.mu.Unlock()

	s.notify()
	return item, nil
}

// UpdateItem replaces the stored item matching item.ID.
// Returns domain.ErrNotFound if no such item exists, domain.ErrValidation if
// the (possibly changed) TripID references no stored trip.
func (s *Store) UpdateItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	s.mu.Lock()
	if !s.tripExistsLocked(item.TripID) {
		s.mu.Unlock()
		return domain.ItineraryItem{}, domain.ErrValidation
	}

	idx := -1
	for i, it := range s.items {
		if it.ID == item.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.ItineraryItem{}, domain.ErrNotFound
	}

	next := append([]domain.ItineraryItem(nil), s.items...)
	next[idx] = item

	if err := s.snaps.Save(ctx, s.trips, next); err != nil {
		s.mu.Unlock()
		return domain.ItineraryItem{}, err
	}
	s.items = next
	s.mu.Unlock()

	s.notify()
	return item, nil
}

// DeleteItem removes the item with the given id.
// Returns domain.ErrNotFound if no such item exists.
func (s *Store) DeleteItem(ctx context.Context, id domain.FlexID) error {
	s.mu.Lock()
	next := make([]domain.ItineraryItem, 0, len(s.items))
	found := false
	for _, it := range s.items {
		if it.ID == id {
			found = true
			continue
		}
		next = append(next, it)
	}
	if !found {
		s.mu.Unlock()
		return domain.ErrNotFound
	}

	if err := s.snaps.Save(ctx, s.trips, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.items = next
	s.mu.Unlock()

	s.notify()
	return nil
}

// ToggleFavorite flips the IsFavorite flag of the item with the given id
// and returns the updated item.
func (s *Store) ToggleFavorite(ctx context.Context, id domain.FlexID) (domain.ItineraryItem, error) {
	s.mu.Lock()
	idx := -1
	for i, it := range s.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.ItineraryItem{}, domain.ErrNotFound
	}

	next := append([]domain.ItineraryItem(nil), s.items...)
	next[idx].IsFavorite = !next[idx].IsFavorite

	if err := s.snaps.Save(ctx, s.trips, next); err != nil {
		s.mu.Unlock()
		return domain.ItineraryItem{}, err
	}
	item := next[idx]
	s.items = next
	s.mu.Unlock()

	s.notify()
	return item, nil
}

// ---- bulk merge ------------------------------------------------------------

// Merge appends already-reconciled trips and items in a single persisted
// write. The reconciler mints the ids; Merge still rejects — with
// domain.ErrValidation — id collisions against existing data and items
// whose TripID resolves to no trip, because it is the last gate before the
// referential invariant would break.
func (s *Store) Merge(ctx context.Context, trips []domain.Trip, items []domain.ItineraryItem) error {
	s.mu.Lock()

	tripIDs := make(map[string]bool, len(s.trips)+len(trips))
	for _, t := range s.trips {
		tripIDs[t.ID] = true
	}
	for _, t := range trips {
		if tripIDs[t.ID] {
			s.mu.Unlock()
			return domain.ErrValidation
		}
		tripIDs[t.ID] = true
	}

	itemIDs := make(map[domain.FlexID]bool, len(s.items)+len(items))
	for _, it := range s.items {
		itemIDs[it.ID] = true
	}
	for _, it := range items {
		if itemIDs[it.ID] || !tripIDs[it.TripID] {
			s.mu.Unlock()
			return domain.ErrValidation
		}
		itemIDs[it.ID] = true
	}

	nextTrips := append(append([]domain.Trip(nil), s.trips...), trips...)
	nextItems := append(append([]domain.ItineraryItem(nil), s.items...), items...)

	if err := s.snaps.Save(ctx, nextTrips, nextItems); err != nil {
		s.mu.Unlock()
		return err
	}
	s.trips = nextTrips
	s.items = nextItems
	s.mu.Unlock()

	s.notify()
	return nil
}

// ---- internal --------------------------------------------------------------

func (s *Store) tripExistsLocked(id string) bool {
	for _, t := range s.trips {
		if t.ID == id {
			return true
		}
	}
	return false
}

// notify runs subscriber callbacks outside the lock so a callback may call
// back into the store.
func (s *Store) notify() {
	s.mu.Lock()
	subs := append([]func(){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
