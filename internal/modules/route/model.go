// README: Route aggregate and vehicle class definitions.
package route

import (
	"time"

	"lastmile/internal/catalog"
	"lastmile/internal/types"
)

// VehicleClass is a static vehicle tier. Selection is a pure function of
// a route's passenger total.
type VehicleClass struct {
	Name     string  `json:"name"`
	Label    string  `json:"label"`
	Capacity int     `json:"capacity"`
	CO2PerKm float64 `json:"co2_per_km"`
}

// Classes, smallest first. The largest class also caps cluster size.
var Classes = []VehicleClass{
	{Name: "shuttle", Label: "Shuttle", Capacity: 4, CO2PerKm: 0.25},
	{Name: "minibus", Label: "Minibus", Capacity: 8, CO2PerKm: 0.35},
	{Name: "coach", Label: "Midicoach", Capacity: 16, CO2PerKm: 0.55},
}

// MaxCapacity is the capacity of the largest class.
func MaxCapacity() int {
	return Classes[len(Classes)-1].Capacity
}

// ClassFor returns the smallest class whose capacity fits the passenger
// count, and whether the count exceeds even the largest class (in which
// case the largest is returned and the route is flagged, not rejected).
func ClassFor(passengers int) (VehicleClass, bool) {
	for _, c := range Classes {
		if passengers <= c.Capacity {
			return c, false
		}
	}
	return Classes[len(Classes)-1], true
}

// Route is an assembled multi-stop trip for one cluster. Immutable once
// published; a replacement carries the same Key rather than mutating it.
type Route struct {
	ID           types.ID           `json:"id"`
	Key          string             `json:"key"`
	Stops        []catalog.Location `json:"stops"`
	Class        VehicleClass       `json:"vehicle_class"`
	Passengers   int                `json:"passengers"`
	Geometry     []types.Point      `json:"geometry"`
	DistanceKm   float64            `json:"distance_km"`
	DurationMin  float64            `json:"duration_min"`
	CO2SavedKg   float64            `json:"co2_saved_kg"`
	Efficiency   int                `json:"efficiency_score"`
	Degraded     bool               `json:"degraded"`
	OverCapacity bool               `json:"over_capacity,omitempty"`
	RequestIDs   []types.ID         `json:"request_ids,omitempty"`
	VehicleID    types.ID           `json:"vehicle_id,omitempty"`
	BuiltAt      time.Time          `json:"built_at"`
}
