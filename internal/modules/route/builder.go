// README: Route builder turns clusters into routes, degrading gracefully on provider failure.
package route

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"lastmile/internal/catalog"
	"lastmile/internal/geo"
	"lastmile/internal/modules/cluster"
	"lastmile/internal/obs"
	"lastmile/internal/routing"
	"lastmile/internal/types"
)

// ErrUnroutable means the cluster cannot form a route (fewer than two
// distinct stops). Such clusters are dropped and logged, never published.
var ErrUnroutable = errors.New("cluster has fewer than two distinct stops")

// Builder assembles a Route per cluster. Provider failures are recovered
// with straight-line geometry; once a cluster is routable, Build always
// returns a Route.
type Builder struct {
	provider routing.Provider
	timeout  time.Duration
	speedKmh float64
	log      *slog.Logger
}

// NewBuilder wires a builder. provider may be nil, in which case every
// route uses synthesized geometry.
func NewBuilder(provider routing.Provider, timeout time.Duration, fallbackSpeedKmh float64, log *slog.Logger) *Builder {
	return &Builder{
		provider: provider,
		timeout:  timeout,
		speedKmh: fallbackSpeedKmh,
		log:      log,
	}
}

// Build assembles one route for the cluster: distinct origins in
// first-seen order, then distinct destinations in first-seen order, real
// geometry when the provider answers in time, straight-line interpolation
// otherwise.
func (b *Builder) Build(ctx context.Context, c cluster.Cluster) (Route, error) {
	stops := stopSequence(c)
	if len(stops) < 2 {
		return Route{}, ErrUnroutable
	}

	class, over := ClassFor(c.Passengers)

	r := Route{
		ID:           newID(),
		Key:          c.Key,
		Stops:        stops,
		Class:        class,
		Passengers:   c.Passengers,
		OverCapacity: over,
		RequestIDs:   c.RequestIDs(),
		BuiltAt:      time.Now(),
	}

	coords := make([]types.Point, len(stops))
	for i, s := range stops {
		coords[i] = s.Point()
	}

	path, err := b.resolve(ctx, coords)
	if err != nil {
		b.log.Warn("routing provider failed, using straight-line fallback",
			"key", c.Key, "stops", len(stops), "error", err)
		obs.RoutingFallbacks.Inc()
		path = b.fallbackPath(coords)
		r.Degraded = true
		obs.RoutesBuilt.WithLabelValues("fallback").Inc()
	} else {
		obs.RoutesBuilt.WithLabelValues("provider").Inc()
	}

	r.Geometry = path.Geometry
	r.DistanceKm = path.DistanceKm
	r.DurationMin = path.DurationMin

	return Annotate(r), nil
}

func (b *Builder) resolve(ctx context.Context, coords []types.Point) (routing.Path, error) {
	if b.provider == nil {
		return routing.Path{}, errors.New("no routing provider configured")
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.provider.Route(ctx, coords)
}

// fallbackPath synthesizes geometry as the straight-line sequence of stop
// coordinates, with distance from great-circle segment sums and duration
// estimated at the configured average speed.
func (b *Builder) fallbackPath(coords []types.Point) routing.Path {
	distance := geo.PathDistanceKm(coords)
	return routing.Path{
		Geometry:    coords,
		DistanceKm:  distance,
		DurationMin: distance / b.speedKmh * 60.0,
	}
}

// stopSequence returns distinct origins in first-seen order followed by
// distinct destinations in first-seen order. A location already present
// as an origin is not appended again as a destination; it is visited once.
func stopSequence(c cluster.Cluster) []catalog.Location {
	seen := make(map[types.ID]bool)
	var stops []catalog.Location

	for _, r := range c.Requests {
		if !seen[r.Origin.ID] {
			seen[r.Origin.ID] = true
			stops = append(stops, r.Origin)
		}
	}
	for _, r := range c.Requests {
		if !seen[r.Destination.ID] {
			seen[r.Destination.ID] = true
			stops = append(stops, r.Destination)
		}
	}
	return stops
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
