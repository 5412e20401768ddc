package domain

// Category is the closed set of itinerary item kinds. Persisted values
// outside the set fall back to CategoryOther on parse, so backups written by
// a newer client with extra categories still import cleanly.
type Category string

const (
	CategorySpot    Category = "SPOT"
	CategoryFood    Category = "FOOD"
	CategoryTraffic Category = "TRAFFIC"
	CategoryStay    Category = "STAY"
	CategoryOther   Category = "OTHER"
)

// CategoryInfo carries the presentation attributes for a category.
// Color is a "#RRGGBB" hex string.
type CategoryInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// categoryInfos is the fixed palette, in display order.
var categoryInfos = map[Category]CategoryInfo{
	CategorySpot:    {Label: "Spot", Color: "#28A745", Icon: "📸"},
	CategoryFood:    {Label: "Food", Color: "#FF8C00", Icon: "🍜"},
	CategoryTraffic: {Label: "Traffic", Color: "#007BFF", Icon: "🚌"},
	CategoryStay:    {Label: "Stay", Color: "#6F42C1", Icon: "🏨"},
	CategoryOther:   {Label: "Other", Color: "#6C757D", Icon: "📝"},
}

// Categories lists all categories in display order.
func Categories() []Category {
	return []Category{CategorySpot, CategoryFood, CategoryTraffic, CategoryStay, CategoryOther}
}

// ParseCategory maps a raw string onto the closed set, falling back to
// CategoryOther for unknown or empty values.
func ParseCategory(s string) Category {
	c := Category(s)
	if _, ok := categoryInfos[c]; ok {
		return c
	}
	return CategoryOther
}

// Info returns the presentation attributes for the category.
// Unknown categories report as CategoryOther.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfos[c]; ok {
		return info
	}
	return categoryInfos[CategoryOther]
}

// Valid reports whether c is one of the closed set.
func (c Category) Valid() bool {
	_, ok := categoryInfos[c]
	return ok
}
