package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tripflow/backend/internal/domain"
)

// calendarResponse is the JSON shape of the month projection. Days maps
// day-of-month to the occupying trip and its range position; unoccupied
// days are absent.
type calendarResponse struct {
	Year  int                         `json:"year"`
	Month int                         `json:"month"`
	Days  map[int]domain.DayOccupancy `json:"days"`
}

// GetCalendar handles GET /calendar?year=YYYY&month=M.
// Both parameters are required; month is 1-12.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondRequestError(w, "year query parameter is required")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		respondRequestError(w, "month query parameter must be 1-12")
		return
	}

	days := s.calendar.Project(year, time.Month(month))
	respondJSON(w, http.StatusOK, calendarResponse{Year: year, Month: month, Days: days})
}
