package domain

// TripBackup is the unit exchanged via QR code: one trip and its items.
type TripBackup struct {
	Meta    Trip            `json:"meta"`
	Content []ItineraryItem `json:"content"`
}

// FullBackup is the unit exchanged via file export/import: any number of
// trips and their items.
type FullBackup struct {
	Trips       []Trip          `json:"trips"`
	Itineraries []ItineraryItem `json:"itineraries"`
}

// BudgetSummary is the derived spending view for one trip.
// Lines holds one entry per item with a non-zero cost; zero-cost items
// contribute zero to Spent and produce no line.
type BudgetSummary struct {
	TripID    string       `json:"tripId"`
	Budget    float64      `json:"budget"`
	Spent     float64      `json:"spent"`
	Remaining float64      `json:"remaining"`
	Lines     []BudgetLine `json:"lines"`
}

// BudgetLine is a single spend entry in a BudgetSummary.
type BudgetLine struct {
	ItemID      FlexID   `json:"itemId"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Cost        float64  `json:"cost"`
}
