// README: Static location catalog entries.
package catalog

import "lastmile/internal/types"

// Category classifies a catalog location for display and clustering.
type Category string

const (
	CategoryCity            Category = "city"
	CategoryVillage         Category = "village"
	CategoryBeach           Category = "beach"
	CategoryArchaeological  Category = "archaeological"
	CategoryPointOfInterest Category = "pointOfInterest"
	CategoryTransportHub    Category = "transportHub"
)

// Location is an immutable entry from the static catalog. Region groups
// locations for demand matching; it may be empty for isolated spots.
type Location struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Category Category `json:"category"`
	Region   string   `json:"region,omitempty"`
}

// Point returns the location's coordinate.
func (l Location) Point() types.Point {
	return types.Point{Lat: l.Lat, Lng: l.Lng}
}

// CompatibilityKey is the discrete attribute demand matching groups by:
// the declared region when present, else the category. Two destinations
// far apart but in the same region share a key; close destinations in
// different regions do not.
func (l Location) CompatibilityKey() string {
	if l.Region != "" {
		return l.Region
	}
	return string(l.Category)
}
