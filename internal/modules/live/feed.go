// README: Authoritative feed client (polled backend "active routes" endpoint).
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lastmile/internal/catalog"
	"lastmile/internal/modules/route"
	"lastmile/internal/types"
)

// FeedClient fetches the backend's active-routes feed. The feed is
// untrusted and frequently absent; every failure is reported as an error
// for the caller to convert into an empty cycle.
type FeedClient struct {
	session *http.Client
	url     string
}

func NewFeedClient(url string, timeout time.Duration) *FeedClient {
	return &FeedClient{
		session: &http.Client{Timeout: timeout},
		url:     url,
	}
}

type feedStop struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type feedRoute struct {
	Key         string     `json:"route_key"`
	VehicleID   string     `json:"vehicle_id"`
	Stops       []feedStop `json:"stops"`
	Passengers  int        `json:"total_passengers"`
	DistanceKm  float64    `json:"total_distance_km"`
	DurationMin float64    `json:"estimated_time_minutes"`
	CO2SavedKg  float64    `json:"co2_saved_kg"`
	Efficiency  int        `json:"efficiency_score"`
	Geometry    [][]float64 `json:"geometry,omitempty"`
}

// Fetch polls the feed once and converts the payload into routes. Records
// without a route key fall back to their vehicle id as the key.
func (f *FeedClient) Fetch(ctx context.Context) ([]route.Route, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var records []feedRoute
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	routes := make([]route.Route, 0, len(records))
	for _, rec := range records {
		r, err := rec.toRoute()
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (rec feedRoute) toRoute() (route.Route, error) {
	key := rec.Key
	if key == "" {
		key = rec.VehicleID
	}
	if key == "" {
		return route.Route{}, fmt.Errorf("feed record without route key or vehicle id")
	}

	stops := make([]catalog.Location, len(rec.Stops))
	for i, s := range rec.Stops {
		stops[i] = catalog.Location{
			ID:   types.ID(s.ID),
			Name: s.Name,
			Lat:  s.Lat,
			Lng:  s.Lng,
		}
	}

	geometry := make([]types.Point, 0, len(rec.Geometry))
	for _, g := range rec.Geometry {
		if len(g) < 2 {
			return route.Route{}, fmt.Errorf("malformed geometry point in feed record %q", key)
		}
		geometry = append(geometry, types.Point{Lat: g[1], Lng: g[0]})
	}
	if len(geometry) == 0 {
		// The feed may omit geometry; the stop coordinates stand in.
		for _, s := range stops {
			geometry = append(geometry, s.Point())
		}
	}

	class, over := route.ClassFor(rec.Passengers)

	return route.Route{
		ID:           types.ID("feed-" + key),
		Key:          key,
		VehicleID:    types.ID(rec.VehicleID),
		Stops:        stops,
		Class:        class,
		Passengers:   rec.Passengers,
		Geometry:     geometry,
		DistanceKm:   rec.DistanceKm,
		DurationMin:  rec.DurationMin,
		CO2SavedKg:   rec.CO2SavedKg,
		Efficiency:   rec.Efficiency,
		OverCapacity: over,
		BuiltAt:      time.Now(),
	}, nil
}
