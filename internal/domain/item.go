package domain

import (
	"encoding/json"
	"strconv"
)

// ItineraryItem is a dated, timed, categorized activity belonging to exactly
// one Trip. Date is "2006-01-02" formatted, Time is "15:04".
//
// Cost contributes to the owning trip's spent/remaining budget computation.
// Description doubles as the geocoding query string clients use for their
// "open in maps" action.
type ItineraryItem struct {
	ID          FlexID   `json:"id"`
	TripID      string   `json:"tripId"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	IsFavorite  bool     `json:"isFavorite"`
	Cost        float64  `json:"cost"`
}

// FlexID is a string identifier that also accepts a JSON number on decode.
// Older clients encoded item ids as epoch-millis integers; backups from
// those clients must still parse. It always encodes as a string.
type FlexID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// MarshalJSON encodes the id as a JSON string.
func (f FlexID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(f))), nil
}
