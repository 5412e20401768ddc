// Package service contains the business logic for the TripFlow backend.
// Services validate inputs, enforce business rules, and orchestrate store
// calls. No persistence or HTTP concerns live here.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tripflow/backend/internal/domain"
	"github.com/tripflow/backend/internal/store"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	store *store.Store
	now   func() time.Time
}

// NewTripService constructs a TripService over the provided store. A nil now
// falls back to time.Now; the clock only feeds date-range normalization
// (month/day-only tokens default to the current year).
func NewTripService(st *store.Store, now func() time.Time) *TripService {
	if now == nil {
		now = time.Now
	}
	return &TripService{store: st, now: now}
}

// Create validates and persists a new trip. The icon defaults when empty and
// the date range is normalized so its start token precedes its end token.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := s.prepare(&trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	created, err := s.store.AddTrip(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip by id.
func (s *TripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	trip, err := s.store.TripByID(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips in creation order.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	return s.store.Trips(), nil
}

// Update validates and replaces an existing trip. The id is immutable; only
// name, icon, date range, and budget change.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := s.prepare(&trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	updated, err := s.store.UpdateTrip(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip and, through the store, every item referencing it.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// prepare applies the shared create/update rules in place.
func (s *TripService) prepare(trip *domain.Trip) error {
	if trip.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	if trip.Icon == "" {
		trip.Icon = domain.DefaultTripIcon
	}
	trip.DateRange = domain.NormalizeDateRange(trip.DateRange, s.now().Year())
	return nil
}
