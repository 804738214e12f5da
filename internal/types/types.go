// README: Common identifier and coordinate value objects used across modules.
package types

// ID is an opaque identifier shared by requests, routes, and vehicles.
type ID string

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
