package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tripflow/backend/internal/domain"
)

// ErrorResponse is the JSON body returned for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human-readable
// message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError maps a service error onto the HTTP taxonomy:
// ErrNotFound→404, ErrValidation→422, ErrFormat→400, ErrCapacity→413,
// anything else→500 (logged, message withheld from the client).
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody("not_found", unwrapMessage(err)))
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err)))
	case errors.Is(err, domain.ErrFormat):
		respondJSON(w, http.StatusBadRequest, errorBody("format_error", unwrapMessage(err)))
	case errors.Is(err, domain.ErrCapacity):
		respondJSON(w, http.StatusRequestEntityTooLarge, errorBody("capacity_error", unwrapMessage(err)))
	default:
		slog.Error("handler error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// respondRequestError rejects a request before it reaches the service layer
// (e.g. missing or malformed body, bad query parameter).
func respondRequestError(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", message))
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error. Service errors look like
// "service.TripService.Create: validation error: name is required" — the
// client only needs the part after the sentinel.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrFormat, domain.ErrCapacity, domain.ErrNotFound} {
		marker := sentinel.Error() + ": "
		if idx := strings.Index(msg, marker); idx >= 0 && idx+len(marker) < len(msg) {
			return msg[idx+len(marker):]
		}
	}
	// Strip "service.X.Y: " style prefixes when no detail follows the sentinel.
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
