// Package handler implements the HTTP handlers for the TripFlow backend.
// All handlers are methods on Server. Methods are split into
// domain-specific files (health.go, trip.go, item.go, backup.go, ...) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tripflow/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

// ItemServicer defines the business operations the item handlers depend on.
type ItemServicer interface {
	Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	ListByTrip(ctx context.Context, tripID string, favoritesOnly bool) ([]domain.ItineraryItem, error)
	Update(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	Delete(ctx context.Context, id domain.FlexID) error
	ToggleFavorite(ctx context.Context, id domain.FlexID) (domain.ItineraryItem, error)
}

// BudgetServicer defines the budget summary operation.
type BudgetServicer interface {
	ForTrip(ctx context.Context, tripID string) (domain.BudgetSummary, error)
}

// CalendarServicer defines the month projection operation.
type CalendarServicer interface {
	Project(year int, month time.Month) map[int]domain.DayOccupancy
}

// BackupServicer defines the import/export reconciler operations.
type BackupServicer interface {
	ExportFull(ctx context.Context, tripIDs []string) ([]byte, error)
	ExportFullToFile(ctx context.Context, tripIDs []string) (string, error)
	ImportFull(ctx context.Context, data []byte) (int, error)
	ExportTrip(ctx context.Context, tripID string) ([]byte, error)
	EncodeTripQR(ctx context.Context, tripID string, sizePx int) ([]byte, error)
	ImportTrip(ctx context.Context, data []byte) (domain.Trip, error)
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips    TripServicer
	items    ItemServicer
	budget   BudgetServicer
	calendar CalendarServicer
	backups  BackupServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, items ItemServicer, budget BudgetServicer, calendar CalendarServicer, backups BackupServicer) *Server {
	return &Server{trips: trips, items: items, budget: budget, calendar: calendar, backups: backups}
}

// Routes builds the chi router for the full API surface.
// Wire middleware around the returned handler in main.go.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/items", s.ListItems)
			r.Post("/items", s.CreateItem)
			r.Get("/budget", s.GetBudget)
			r.Get("/backup", s.GetTripBackup)
			r.Get("/qr", s.GetTripQR)
		})
	})

	r.Route("/items/{itemID}", func(r chi.Router) {
		r.Put("/", s.UpdateItem)
		r.Delete("/", s.DeleteItem)
		r.Post("/favorite", s.ToggleFavorite)
	})

	r.Get("/calendar", s.GetCalendar)
	r.Post("/export", s.ExportFull)
	r.Post("/import", s.ImportFull)
	r.Post("/import/trip", s.ImportTrip)

	return r
}
