// README: Google Maps Directions provider.
package routing

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"lastmile/internal/types"
)

// GoogleProvider resolves routes through the Google Maps Directions API.
// Intermediate stops are sent as waypoints; geometry comes from the
// overview polyline.
type GoogleProvider struct {
	client *maps.Client
}

func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GoogleProvider{client: client}, nil
}

func (g *GoogleProvider) Route(ctx context.Context, stops []types.Point) (Path, error) {
	if len(stops) < 2 {
		return Path{}, errors.New("at least two stops required")
	}

	waypoints := make([]string, 0, len(stops)-2)
	for _, s := range stops[1 : len(stops)-1] {
		waypoints = append(waypoints, latLng(s))
	}

	r := &maps.DirectionsRequest{
		Origin:      latLng(stops[0]),
		Destination: latLng(stops[len(stops)-1]),
		Waypoints:   waypoints,
		Mode:        maps.TravelModeDriving,
		Region:      "CY",
	}

	routes, _, err := g.client.Directions(ctx, r)
	if err != nil {
		return Path{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Path{}, ErrNoRoute
	}

	best := routes[0]

	var path Path
	for _, leg := range best.Legs {
		path.DistanceKm += float64(leg.Distance.Meters) / 1000.0
		path.DurationMin += leg.Duration.Minutes()
	}

	decoded, err := best.OverviewPolyline.Decode()
	if err != nil {
		return Path{}, fmt.Errorf("decode polyline: %w", err)
	}
	path.Geometry = make([]types.Point, len(decoded))
	for i, p := range decoded {
		path.Geometry[i] = types.Point{Lat: p.Lat, Lng: p.Lng}
	}
	if len(path.Geometry) == 0 {
		return Path{}, ErrNoRoute
	}
	return path, nil
}

func latLng(p types.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
