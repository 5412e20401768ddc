package domain

// RangePosition classifies where a calendar day sits within a trip's date
// range. Clients use it purely to pick a visual shape (circle for a sole
// day, rounded caps for range ends, flat middle segments).
type RangePosition string

const (
	PositionSole   RangePosition = "SOLE"
	PositionStart  RangePosition = "START"
	PositionMiddle RangePosition = "MIDDLE"
	PositionEnd    RangePosition = "END"
)

// DayOccupancy records which trip occupies a calendar day and where that day
// falls in the trip's range. At most one trip occupies a day; when several
// trips overlap, the earliest-created one keeps the day.
type DayOccupancy struct {
	Trip     Trip          `json:"trip"`
	Position RangePosition `json:"position"`
}
