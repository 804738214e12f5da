// README: Static Cyprus location catalog with lookup by ID.
package catalog

import "lastmile/internal/types"

// Catalog is an immutable set of known locations. It is built once at
// startup and only ever read after that.
type Catalog struct {
	byID    map[types.ID]Location
	ordered []Location
}

// New returns the built-in Cyprus catalog.
func New() *Catalog {
	return fromList(cyprusLocations)
}

func fromList(list []Location) *Catalog {
	c := &Catalog{
		byID:    make(map[types.ID]Location, len(list)),
		ordered: make([]Location, 0, len(list)),
	}
	for _, l := range list {
		if _, dup := c.byID[l.ID]; dup {
			continue
		}
		c.byID[l.ID] = l
		c.ordered = append(c.ordered, l)
	}
	return c
}

// Get returns the location for id, if known.
func (c *Catalog) Get(id types.ID) (Location, bool) {
	l, ok := c.byID[id]
	return l, ok
}

// All returns the catalog in declaration order. The slice is a copy.
func (c *Catalog) All() []Location {
	out := make([]Location, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

var cyprusLocations = []Location{
	// Troodos mountain villages
	{ID: "platres", Name: "Platres", Lat: 34.8894, Lng: 32.8636, Category: CategoryVillage, Region: "Troodos"},
	{ID: "kakopetria", Name: "Kakopetria", Lat: 34.9833, Lng: 32.9000, Category: CategoryVillage, Region: "Troodos"},
	{ID: "pedoulas", Name: "Pedoulas", Lat: 34.9667, Lng: 32.8333, Category: CategoryVillage, Region: "Troodos"},
	{ID: "prodromos", Name: "Prodromos", Lat: 34.9500, Lng: 32.8333, Category: CategoryVillage, Region: "Troodos"},
	{ID: "agros", Name: "Agros", Lat: 34.9167, Lng: 33.0167, Category: CategoryVillage, Region: "Troodos"},
	{ID: "omodos", Name: "Omodos", Lat: 34.8500, Lng: 32.8000, Category: CategoryVillage, Region: "Troodos"},
	{ID: "olympus", Name: "Mount Olympus", Lat: 34.9417, Lng: 32.8667, Category: CategoryPointOfInterest, Region: "Troodos"},

	// Famagusta coast
	{ID: "ayia_napa", Name: "Ayia Napa", Lat: 34.9833, Lng: 34.0000, Category: CategoryPointOfInterest, Region: "Famagusta"},
	{ID: "protaras", Name: "Protaras", Lat: 35.0167, Lng: 34.0500, Category: CategoryPointOfInterest, Region: "Famagusta"},
	{ID: "fig_tree_bay", Name: "Fig Tree Bay", Lat: 35.0139, Lng: 34.0556, Category: CategoryBeach, Region: "Famagusta"},
	{ID: "nissi_beach", Name: "Nissi Beach", Lat: 34.9917, Lng: 33.9750, Category: CategoryBeach, Region: "Famagusta"},

	// Paphos district
	{ID: "paphos", Name: "Paphos", Lat: 34.7754, Lng: 32.4245, Category: CategoryCity, Region: "Paphos"},
	{ID: "coral_bay", Name: "Coral Bay", Lat: 34.8500, Lng: 32.3667, Category: CategoryBeach, Region: "Paphos"},
	{ID: "paphos_mosaics", Name: "Paphos Mosaics", Lat: 34.7583, Lng: 32.4083, Category: CategoryArchaeological, Region: "Paphos"},
	{ID: "tombs_of_kings", Name: "Tombs of the Kings", Lat: 34.7750, Lng: 32.4000, Category: CategoryArchaeological, Region: "Paphos"},
	{ID: "paphos_airport", Name: "Paphos Airport", Lat: 34.7180, Lng: 32.4857, Category: CategoryTransportHub, Region: "Paphos"},

	// Larnaca district
	{ID: "larnaca", Name: "Larnaca", Lat: 34.9229, Lng: 33.6232, Category: CategoryCity, Region: "Larnaca"},
	{ID: "larnaca_airport", Name: "Larnaca Airport", Lat: 34.8751, Lng: 33.6249, Category: CategoryTransportHub, Region: "Larnaca"},
	{ID: "lefkara", Name: "Lefkara", Lat: 34.8667, Lng: 33.3000, Category: CategoryVillage, Region: "Larnaca"},
	{ID: "choirokoitia", Name: "Choirokoitia", Lat: 34.7972, Lng: 33.3417, Category: CategoryArchaeological, Region: "Larnaca"},

	// Limassol district
	{ID: "limassol", Name: "Limassol", Lat: 34.6841, Lng: 33.0379, Category: CategoryCity, Region: "Limassol"},
	{ID: "kourion", Name: "Kourion", Lat: 34.6667, Lng: 32.8833, Category: CategoryArchaeological, Region: "Limassol"},
	{ID: "limassol_port", Name: "Limassol Port", Lat: 34.6500, Lng: 33.0064, Category: CategoryTransportHub, Region: "Limassol"},

	// Nicosia district
	{ID: "nicosia", Name: "Nicosia", Lat: 35.1856, Lng: 33.3823, Category: CategoryCity, Region: "Nicosia"},
	{ID: "fikardou", Name: "Fikardou", Lat: 34.9667, Lng: 33.1333, Category: CategoryVillage, Region: "Nicosia"},
}
