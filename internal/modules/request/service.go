// README: Request service implements submission validation and assignment bookkeeping.
package request

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"lastmile/internal/catalog"
	"lastmile/internal/obs"
	"lastmile/internal/types"
)

var (
	ErrInvalidPassengers = errors.New("passenger count must be positive and within vehicle capacity")
	ErrSameLocation      = errors.New("origin and destination must differ")
	ErrUnknownLocation   = errors.New("unknown location id")
	ErrNotFound          = errors.New("request not found")
)

type Service struct {
	store   *Store
	catalog *catalog.Catalog
	archive *Archive
	log     *slog.Logger

	// maxPassengers caps a single submission at the largest vehicle class.
	maxPassengers int
}

func NewService(store *Store, cat *catalog.Catalog, archive *Archive, maxPassengers int, log *slog.Logger) *Service {
	return &Service{
		store:         store,
		catalog:       cat,
		archive:       archive,
		log:           log,
		maxPassengers: maxPassengers,
	}
}

type SubmitCommand struct {
	OriginID      types.ID
	DestinationID types.ID
	Passengers    int
}

// Submit validates and appends a new pending request. Validation failures
// are rejected synchronously and never enter the store.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (RideRequest, error) {
	if cmd.Passengers <= 0 || cmd.Passengers > s.maxPassengers {
		obs.RequestsRejected.Inc()
		return RideRequest{}, ErrInvalidPassengers
	}
	if cmd.OriginID == cmd.DestinationID {
		obs.RequestsRejected.Inc()
		return RideRequest{}, ErrSameLocation
	}
	origin, ok := s.catalog.Get(cmd.OriginID)
	if !ok {
		obs.RequestsRejected.Inc()
		return RideRequest{}, ErrUnknownLocation
	}
	destination, ok := s.catalog.Get(cmd.DestinationID)
	if !ok {
		obs.RequestsRejected.Inc()
		return RideRequest{}, ErrUnknownLocation
	}

	r := RideRequest{
		ID:          newID(),
		Origin:      origin,
		Destination: destination,
		Passengers:  cmd.Passengers,
		CreatedAt:   time.Now(),
		Status:      StatusPending,
	}
	s.store.Append(r)
	obs.RequestsSubmitted.Inc()

	if s.archive != nil {
		if err := s.archive.InsertRequest(ctx, r); err != nil {
			s.log.Warn("request archive write failed", "request_id", r.ID, "error", err)
		}
	}

	return r, nil
}

// Pending returns the current pending queue in insertion order.
func (s *Service) Pending() []RideRequest {
	return s.store.Pending()
}

// Get returns a request by id.
func (s *Service) Get(id types.ID) (RideRequest, error) {
	r, ok := s.store.Get(id)
	if !ok {
		return RideRequest{}, ErrNotFound
	}
	return r, nil
}

// MarkAssigned transitions the given requests to assigned and mirrors the
// transition into the archive when one is configured.
func (s *Service) MarkAssigned(ctx context.Context, ids []types.ID) {
	s.store.MarkAssigned(ids)

	if s.archive != nil {
		if err := s.archive.MarkAssigned(ctx, ids); err != nil {
			s.log.Warn("request archive update failed", "count", len(ids), "error", err)
		}
	}
}

// Totals reports lifetime and per-status counts for the stats endpoint.
func (s *Service) Totals() (total int64, pending, assigned int) {
	return s.store.Total(), s.store.CountByStatus(StatusPending), s.store.CountByStatus(StatusAssigned)
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
