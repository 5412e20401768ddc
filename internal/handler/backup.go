// Package handler — backup.go implements the import/export endpoints.
// Full backups travel as files or raw JSON bodies; single-trip backups
// travel as QR payloads. The scan/decode itself happens on the client; the
// server only sees the decoded JSON.
package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// defaultQRSizePx is the rendered QR code edge length when the client does
// not ask for a specific size.
const defaultQRSizePx = 512

// exportRequest selects the trips to include in a full export.
type exportRequest struct {
	TripIDs []string `json:"tripIds"`
}

// ExportFull handles POST /export.
// The body selects trips by id. By default the FullBackup JSON is returned
// in the response; with ?to=file it is written to the configured export
// directory and the file path is returned instead.
func (s *Server) ExportFull(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondRequestError(w, "request body must be {\"tripIds\": [...]}")
		return
	}

	if r.URL.Query().Get("to") == "file" {
		path, err := s.backups.ExportFullToFile(r.Context(), req.TripIDs)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"path": path})
		return
	}

	data, err := s.backups.ExportFull(r.Context(), req.TripIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ImportFull handles POST /import.
// The body is a FullBackup JSON document (typically the contents of a
// previously exported file). Responds with the number of trips imported.
func (s *Server) ImportFull(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondRequestError(w, "failed to read request body")
		return
	}

	count, err := s.backups.ImportFull(r.Context(), data)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"tripsImported": count})
}

// GetTripBackup handles GET /trips/{tripID}/backup.
// Returns the TripBackup JSON payload a QR code would carry.
func (s *Server) GetTripBackup(w http.ResponseWriter, r *http.Request) {
	data, err := s.backups.ExportTrip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GetTripQR handles GET /trips/{tripID}/qr?size=N.
// Returns the trip's backup payload rendered as a QR code PNG.
func (s *Server) GetTripQR(w http.ResponseWriter, r *http.Request) {
	size := defaultQRSizePx
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondRequestError(w, "size query parameter must be a positive integer")
			return
		}
		size = parsed
	}

	png, err := s.backups.EncodeTripQR(r.Context(), chi.URLParam(r, "tripID"), size)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// ImportTrip handles POST /import/trip.
// The body is a TripBackup JSON document — the result of scanning a shared
// QR code or decoding one from a gallery image. Responds with the newly
// created trip (name suffixed " (imported)").
func (s *Server) ImportTrip(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondRequestError(w, "failed to read request body")
		return
	}

	trip, err := s.backups.ImportTrip(r.Context(), data)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}
