package store

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDSource mints identifiers for new trips and itinerary items. It is
// injected so tests can use deterministic ids and so a bulk import can never
// collide with existing local data.
type IDSource interface {
	TripID() string
	ItemID() string
}

// ClockIDSource is the production IDSource. Trip ids are UUIDs. Item ids
// keep the epoch-millis shape older clients used, with a monotonic counter
// appended — wall-clock time alone collides under rapid bulk insertion.
type ClockIDSource struct {
	now func() time.Time
	seq atomic.Uint64
}

// NewClockIDSource constructs a ClockIDSource. A nil now falls back to
// time.Now; tests pass a fixed clock to make item ids predictable.
func NewClockIDSource(now func() time.Time) *ClockIDSource {
	if now == nil {
		now = time.Now
	}
	return &ClockIDSource{now: now}
}

func (s *ClockIDSource) TripID() string {
	return uuid.NewString()
}

func (s *ClockIDSource) ItemID() string {
	n := s.seq.Add(1)
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + strconv.FormatUint(n, 10)
}
