package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tripflow/backend/internal/domain"
	"github.com/tripflow/backend/internal/store"
)

// Date and time layouts for itinerary items, fixed by the wire schema.
const (
	itemDateLayout = "2006-01-02"
	itemTimeLayout = "15:04"
)

// ItemService implements business logic for ItineraryItem operations.
type ItemService struct {
	store *store.Store
}

// NewItemService constructs an ItemService over the provided store.
func NewItemService(st *store.Store) *ItemService {
	return &ItemService{store: st}
}

// Create validates and persists a new itinerary item under its trip.
// Unknown categories fall back to OTHER rather than failing — persisted
// values from newer clients must stay importable.
func (s *ItemService) Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if err := prepareItem(&item); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}

	created, err := s.store.AddItem(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	return created, nil
}

// ListByTrip returns the trip's items sorted by date then time. With
// favoritesOnly set, non-favorites are filtered out.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *ItemService) ListByTrip(ctx context.Context, tripID string, favoritesOnly bool) ([]domain.ItineraryItem, error) {
	if _, err := s.store.TripByID(tripID); err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByTrip: %w", err)
	}

	items := s.store.ItemsByTrip(tripID)
	if favoritesOnly {
		kept := items[:0]
		for _, it := range items {
			if it.IsFavorite {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	// Date and time are both fixed-width lexicographic formats, so string
	// concatenation sorts chronologically.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date+items[i].Time < items[j].Date+items[j].Time
	})
	return items, nil
}

// Update validates and replaces an existing item.
func (s *ItemService) Update(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if err := prepareItem(&item); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}

	updated, err := s.store.UpdateItem(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an item by id.
func (s *ItemService) Delete(ctx context.Context, id domain.FlexID) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("service.ItemService.Delete: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag, leaving all other fields alone.
func (s *ItemService) ToggleFavorite(ctx context.Context, id domain.FlexID) (domain.ItineraryItem, error) {
	item, err := s.store.ToggleFavorite(ctx, id)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItemService.ToggleFavorite: %w", err)
	}
	return item, nil
}

// prepareItem applies the shared create/update rules in place.
func prepareItem(item *domain.ItineraryItem) error {
	if item.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if item.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if _, err := time.Parse(itemDateLayout, item.Date); err != nil {
		return fmt.Errorf("%w: date must be yyyy-MM-dd", domain.ErrValidation)
	}
	if _, err := time.Parse(itemTimeLayout, item.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:mm", domain.ErrValidation)
	}
	item.Category = domain.ParseCategory(string(item.Category))
	return nil
}
