// README: Fleet service handles position updates and stale-vehicle sweeping.
package fleet

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lastmile/internal/types"
)

var ErrInvalidPosition = errors.New("position outside plausible bounds")

type Service struct {
	store *Store
	log   *slog.Logger
}

func NewService(store *Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

type Update struct {
	VehicleID types.ID
	Position  types.Point
}

// UpdatePosition records a vehicle position.
func (s *Service) UpdatePosition(ctx context.Context, u Update) error {
	if u.Position.Lat < -90 || u.Position.Lat > 90 || u.Position.Lng < -180 || u.Position.Lng > 180 {
		return ErrInvalidPosition
	}
	return s.store.SetPosition(ctx, u.VehicleID, u.Position, time.Now())
}

// Positions returns the current fleet snapshot.
func (s *Service) Positions(ctx context.Context) ([]VehiclePosition, error) {
	return s.store.Positions(ctx)
}

// RunStaleSweep periodically removes vehicles not seen within threshold.
func (s *Service) RunStaleSweep(ctx context.Context, interval, threshold time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx, threshold)
		}
	}
}

func (s *Service) sweep(ctx context.Context, threshold time.Duration) {
	positions, err := s.store.Positions(ctx)
	if err != nil {
		s.log.Warn("fleet sweep read failed", "error", err)
		return
	}
	cutoff := time.Now().Add(-threshold)
	for _, vp := range positions {
		if vp.RecordedAt.IsZero() || vp.RecordedAt.After(cutoff) {
			continue
		}
		if err := s.store.Remove(ctx, vp.VehicleID); err != nil {
			s.log.Warn("fleet sweep remove failed", "vehicle_id", vp.VehicleID, "error", err)
			continue
		}
		s.log.Info("removed stale vehicle", "vehicle_id", vp.VehicleID)
	}
}
