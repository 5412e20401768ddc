package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/backend/internal/domain"
	"github.com/tripflow/backend/internal/handler"
)

// mockItemServicer is a test double for handler.ItemServicer.
type mockItemServicer struct {
	create         func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	listByTrip     func(ctx context.Context, tripID string, favoritesOnly bool) ([]domain.ItineraryItem, error)
	update         func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	delete         func(ctx context.Context, id domain.FlexID) error
	toggleFavorite func(ctx context.Context, id domain.FlexID) (domain.ItineraryItem, error)
}

func (m *mockItemServicer) Create(ctx context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.create(ctx, it)
}
func (m *mockItemServicer) ListByTrip(ctx context.Context, tripID string, favoritesOnly bool) ([]domain.ItineraryItem, error) {
	return m.listByTrip(ctx, tripID, favoritesOnly)
}
func (m *mockItemServicer) Update(ctx context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.update(ctx, it)
}
func (m *mockItemServicer) Delete(ctx context.Context, id domain.FlexID) error {
	return m.delete(ctx, id)
}
func (m *mockItemServicer) ToggleFavorite(ctx context.Context, id domain.FlexID) (domain.ItineraryItem, error) {
	return m.toggleFavorite(ctx, id)
}

var _ handler.ItemServicer = (*mockItemServicer)(nil)

// mockBudgetServicer is a test double for handler.BudgetServicer.
type mockBudgetServicer struct {
	forTrip func(ctx context.Context, tripID string) (domain.BudgetSummary, error)
}

func (m *mockBudgetServicer) ForTrip(ctx context.Context, tripID string) (domain.BudgetSummary, error) {
	return m.forTrip(ctx, tripID)
}

var _ handler.BudgetServicer = (*mockBudgetServicer)(nil)

func newItemHandler(items handler.ItemServicer, budget handler.BudgetServicer) http.Handler {
	return handler.NewServer(nil, items, budget, nil, nil).Routes()
}

func itemFixture() domain.ItineraryItem {
	return domain.ItineraryItem{
		ID:          "item-1",
		TripID:      "trip-1",
		Date:        "2024-06-02",
		Time:        "10:00",
		Description: "Beach",
		Category:    domain.CategorySpot,
		Cost:        20,
	}
}

// ---- POST /trips/{tripID}/items --------------------------------------------

func TestCreateItem_201_TripIDFromPath(t *testing.T) {
	fixture := itemFixture()
	svc := &mockItemServicer{
		create: func(_ context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) {
			assert.Equal(t, "trip-1", it.TripID)
			assert.Empty(t, it.ID)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"id":          "client-picked",
		"tripId":      "other-trip",
		"date":        "2024-06-02",
		"time":        "10:00",
		"description": "Beach",
		"category":    "SPOT",
		"cost":        20,
	})
	req := httptest.NewRequest(http.MethodPost, "/trips/trip-1/items", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newItemHandler(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp domain.ItineraryItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
}

func TestCreateItem_422_ValidationError(t *testing.T) {
	svc := &mockItemServicer{
		create: func(_ context.Context, _ domain.ItineraryItem) (domain.ItineraryItem, error) {
			return domain.ItineraryItem{}, fmt.Errorf("%w: description is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"date": "2024-06-02", "time": "10:00"})
	req := httptest.NewRequest(http.MethodPost, "/trips/trip-1/items", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newItemHandler(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "description is required", decodeErrorResponse(t, rec).Error.Message)
}

// ---- GET /trips/{tripID}/items ---------------------------------------------

func TestListItems_200(t *testing.T) {
	svc := &mockItemServicer{
		listByTrip: func(_ context.Context, tripID string, favoritesOnly bool) ([]domain.ItineraryItem, error) {
			assert.Equal(t, "trip-1", tripID)
			assert.False(t, favoritesOnly)
			return []domain.ItineraryItem{itemFixture()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/trip-1/items", nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.ItineraryItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 1)
}

func TestListItems_200_FavoritesFilter(t *testing.T) {
	svc := &mockItemServicer{
		listByTrip: func(_ context.Context, _ string, favoritesOnly bool) ([]domain.ItineraryItem, error) {
			assert.True(t, favoritesOnly)
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/trip-1/items?favorites=true", nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListItems_404_UnknownTrip(t *testing.T) {
	svc := &mockItemServicer{
		listByTrip: func(_ context.Context, _ string, _ bool) ([]domain.ItineraryItem, error) {
			return nil, fmt.Errorf("service.ItemService.ListByTrip: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/ghost/items", nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- PUT /items/{itemID} ---------------------------------------------------

func TestUpdateItem_200_PathIDWins(t *testing.T) {
	svc := &mockItemServicer{
		update: func(_ context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) {
			assert.Equal(t, domain.FlexID("item-1"), it.ID)
			return it, nil
		},
	}

	body := jsonBody(t, map[string]any{"id": "other", "description": "Museum", "date": "2024-06-02", "time": "14:00"})
	req := httptest.NewRequest(http.MethodPut, "/items/item-1", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newItemHandler(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- DELETE /items/{itemID} ------------------------------------------------

func TestDeleteItem_204(t *testing.T) {
	var deleted domain.FlexID
	svc := &mockItemServicer{
		delete: func(_ context.Context, id domain.FlexID) error {
			deleted = id
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/items/item-1", nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.FlexID("item-1"), deleted)
}

// ---- POST /items/{itemID}/favorite -----------------------------------------

func TestToggleFavorite_200(t *testing.T) {
	fixture := itemFixture()
	fixture.IsFavorite = true
	svc := &mockItemServicer{
		toggleFavorite: func(_ context.Context, id domain.FlexID) (domain.ItineraryItem, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/items/item-1/favorite", nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ItineraryItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.IsFavorite)
}

// ---- GET /trips/{tripID}/budget --------------------------------------------

func TestGetBudget_200(t *testing.T) {
	budget := &mockBudgetServicer{
		forTrip: func(_ context.Context, tripID string) (domain.BudgetSummary, error) {
			assert.Equal(t, "trip-1", tripID)
			return domain.BudgetSummary{
				TripID: "trip-1", Budget: 1000, Spent: 350, Remaining: 650,
				Lines: []domain.BudgetLine{{ItemID: "item-1", Description: "Hotel", Cost: 350}},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/trip-1/budget", nil)
	rec := httptest.NewRecorder()

	newItemHandler(nil, budget).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.BudgetSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 650.0, resp.Remaining)
	assert.Len(t, resp.Lines, 1)
}

func TestGetBudget_404(t *testing.T) {
	budget := &mockBudgetServicer{
		forTrip: func(_ context.Context, _ string) (domain.BudgetSummary, error) {
			return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.ForTrip: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/ghost/budget", nil)
	rec := httptest.NewRecorder()

	newItemHandler(nil, budget).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
