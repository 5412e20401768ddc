package service

import (
	"context"
	"fmt"

	"github.com/tripflow/backend/internal/domain"
	"github.com/tripflow/backend/internal/store"
)

// BudgetService derives per-trip spending summaries.
type BudgetService struct {
	store *store.Store
}

// NewBudgetService constructs a BudgetService over the provided store.
func NewBudgetService(st *store.Store) *BudgetService {
	return &BudgetService{store: st}
}

// ForTrip returns the budget summary for one trip.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *BudgetService) ForTrip(ctx context.Context, tripID string) (domain.BudgetSummary, error) {
	trip, err := s.store.TripByID(tripID)
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.ForTrip: %w", err)
	}
	return Summarize(trip, s.store.ItemsByTrip(tripID)), nil
}

// Summarize computes the spending view for a trip over its items. Pure
// function. Zero-cost items contribute zero to Spent and produce no spend
// line — they are itinerary entries, not expenses.
func Summarize(trip domain.Trip, items []domain.ItineraryItem) domain.BudgetSummary {
	sum := domain.BudgetSummary{
		TripID: trip.ID,
		Budget: trip.Budget,
		Lines:  []domain.BudgetLine{},
	}

	for _, it := range items {
		sum.Spent += it.Cost
		if it.Cost > 0 {
			sum.Lines = append(sum.Lines, domain.BudgetLine{
				ItemID:      it.ID,
				Description: it.Description,
				Category:    it.Category,
				Cost:        it.Cost,
			})
		}
	}

	sum.Remaining = sum.Budget - sum.Spent
	return sum
}
