package service

import (
	"strings"
	"time"

	"github.com/tripflow/backend/internal/domain"
	"github.com/tripflow/backend/internal/store"
)

// CalendarService projects trips onto a month grid for the calendar view.
type CalendarService struct {
	store *store.Store
}

// NewCalendarService constructs a CalendarService over the provided store.
func NewCalendarService(st *store.Store) *CalendarService {
	return &CalendarService{store: st}
}

// Project returns the occupancy map for the given month over the current
// set of trips.
func (s *CalendarService) Project(year int, month time.Month) map[int]domain.DayOccupancy {
	return ProjectMonth(s.store.Trips(), year, month)
}

// ProjectMonth computes which day cells of (year, month) are occupied by
// which trip. Pure function of its inputs; safe to recompute on every
// render.
//
// A ranged trip claims every day from start to end inclusive, classified as
// START, MIDDLE, or END. A single-date trip claims one day as SOLE.
// Month/day-only tokens default to the projection's target year. When trips
// overlap, the earliest trip in store order keeps the day; later trips never
// overwrite a claimed cell.
func ProjectMonth(trips []domain.Trip, year int, month time.Month) map[int]domain.DayOccupancy {
	occ := make(map[int]domain.DayOccupancy)

	for _, trip := range trips {
		raw := strings.TrimSpace(trip.DateRange)
		if raw == "" {
			continue
		}

		start, end, ok := domain.ParseDateRange(raw, year)
		if !ok {
			continue
		}

		if !strings.Contains(raw, "~") {
			if start.Year() == year && start.Month() == month {
				claim(occ, start.Day(), trip, domain.PositionSole)
			}
			continue
		}

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			if day.Year() != year || day.Month() != month {
				continue
			}
			pos := domain.PositionMiddle
			switch {
			case day.Equal(start):
				pos = domain.PositionStart
			case day.Equal(end):
				pos = domain.PositionEnd
			}
			claim(occ, day.Day(), trip, pos)
		}
	}

	return occ
}

// claim records an occupancy unless the day is already taken.
func claim(occ map[int]domain.DayOccupancy, day int, trip domain.Trip, pos domain.RangePosition) {
	if _, taken := occ[day]; taken {
		return
	}
	occ[day] = domain.DayOccupancy{Trip: trip, Position: pos}
}
