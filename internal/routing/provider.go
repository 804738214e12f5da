// README: Road-routing provider contract.
package routing

import (
	"context"
	"errors"

	"lastmile/internal/types"
)

// Path is the provider's answer for an ordered stop list.
type Path struct {
	Geometry    []types.Point
	DistanceKm  float64
	DurationMin float64
}

// ErrNoRoute means the provider answered but found no drivable path.
var ErrNoRoute = errors.New("no route found")

// Provider resolves real road geometry for an ordered list of stops.
// Implementations talk to external services and are treated as unreliable:
// any error (timeout, non-2xx, malformed payload) is recovered by the
// caller with synthesized geometry, never propagated.
type Provider interface {
	Route(ctx context.Context, stops []types.Point) (Path, error)
}
