package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripflow/backend/internal/domain"
)

// CreateItem handles POST /trips/{tripID}/items.
// The item's tripId comes from the path; ids are server-assigned.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item domain.ItineraryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondRequestError(w, "request body must be an itinerary item object")
		return
	}
	item.ID = ""
	item.TripID = chi.URLParam(r, "tripID")

	created, err := s.items.Create(r.Context(), item)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListItems handles GET /trips/{tripID}/items.
// Items are sorted by date then time. ?favorites=true filters to favorites.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	favoritesOnly := r.URL.Query().Get("favorites") == "true"

	items, err := s.items.ListByTrip(r.Context(), chi.URLParam(r, "tripID"), favoritesOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []domain.ItineraryItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// UpdateItem handles PUT /items/{itemID}.
// The path id wins over any id carried in the body.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var item domain.ItineraryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondRequestError(w, "request body must be an itinerary item object")
		return
	}
	item.ID = domain.FlexID(chi.URLParam(r, "itemID"))

	updated, err := s.items.Update(r.Context(), item)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteItem handles DELETE /items/{itemID}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.items.Delete(r.Context(), domain.FlexID(chi.URLParam(r, "itemID"))); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite handles POST /items/{itemID}/favorite.
// It flips the favorite flag and returns the updated item.
func (s *Server) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	item, err := s.items.ToggleFavorite(r.Context(), domain.FlexID(chi.URLParam(r, "itemID")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// GetBudget handles GET /trips/{tripID}/budget.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	summary, err := s.budget.ForTrip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
