// README: Fleet store backed by Redis GEO and a last-seen hash.
package fleet

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"lastmile/internal/types"
)

const (
	vehicleGeoKey  = "fleet:positions"
	vehicleSeenKey = "fleet:last_seen"
)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// SetPosition upserts a vehicle's position and stamps its last-seen time.
func (s *Store) SetPosition(ctx context.Context, id types.ID, p types.Point, at time.Time) error {
	pipe := s.redis.Pipeline()
	pipe.GeoAdd(ctx, vehicleGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	})
	pipe.HSet(ctx, vehicleSeenKey, string(id), at.UTC().Format(time.RFC3339))
	_, err := pipe.Exec(ctx)
	return err
}

// Remove drops a vehicle from the store.
func (s *Store) Remove(ctx context.Context, id types.ID) error {
	pipe := s.redis.Pipeline()
	pipe.ZRem(ctx, vehicleGeoKey, string(id))
	pipe.HDel(ctx, vehicleSeenKey, string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Positions returns every tracked vehicle with its position and last-seen
// time.
func (s *Store) Positions(ctx context.Context) ([]VehiclePosition, error) {
	ids, err := s.redis.ZRange(ctx, vehicleGeoKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []VehiclePosition{}, nil
	}

	pos, err := s.redis.GeoPos(ctx, vehicleGeoKey, ids...).Result()
	if err != nil {
		return nil, err
	}
	seen, err := s.redis.HGetAll(ctx, vehicleSeenKey).Result()
	if err != nil {
		return nil, err
	}

	out := make([]VehiclePosition, 0, len(ids))
	for i, id := range ids {
		if i >= len(pos) || pos[i] == nil {
			continue
		}
		vp := VehiclePosition{
			VehicleID: types.ID(id),
			Position:  types.Point{Lat: pos[i].Latitude, Lng: pos[i].Longitude},
		}
		if raw, ok := seen[id]; ok {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				vp.RecordedAt = t
			}
		}
		out = append(out, vp)
	}
	return out, nil
}

// Nearby returns vehicle ids within radiusKm of p, nearest first.
func (s *Store) Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]types.ID, error) {
	results, err := s.redis.GeoSearch(ctx, vehicleGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.Lng,
		Latitude:   p.Lat,
		Radius:     radiusKm,
		RadiusUnit: "km",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = types.ID(r)
	}
	return ids, nil
}
