// Package domain contains the core data types for the TripFlow backend.
// This package has zero external dependencies and is imported by every other
// internal package (repo, store, service, handler).
//
// JSON tags match the backup wire schema used by the mobile clients, so a
// FullBackup or TripBackup produced here can be consumed by any of them and
// vice versa.
package domain

// Trip represents a single travel plan. A trip is the top-level aggregate;
// itinerary items belong to a trip.
//
// DateRange is a free-form string: empty, a single date ("2025/06/01" or
// "06/01"), or start and end joined by " ~ ". It is normalized on save so
// start <= end, but imported backups may carry anything — consumers parse
// defensively (see ParseDateRange).
type Trip struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Icon      string  `json:"icon"`
	DateRange string  `json:"dateRange"`
	Budget    float64 `json:"budget"`
}

// DefaultTripIcon is assigned when a trip is created without an icon.
const DefaultTripIcon = "✈️"
