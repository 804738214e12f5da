// README: In-memory append-only request log; the single source of mutable request state.
package request

import (
	"sync"

	"lastmile/internal/types"
)

// Store keeps every submitted request in insertion order. Insertion order
// is meaningful: it is the tie-break order for clustering downstream.
type Store struct {
	mu    sync.RWMutex
	byID  map[types.ID]int
	log   []RideRequest
	total int64
}

func NewStore() *Store {
	return &Store{byID: make(map[types.ID]int)}
}

// Append adds a new request to the log and bumps the running total.
func (s *Store) Append(r RideRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[r.ID] = len(s.log)
	s.log = append(s.log, r)
	s.total++
}

// Pending returns all pending requests in insertion order. The slice and
// its elements are copies.
func (s *Store) Pending() []RideRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RideRequest, 0, len(s.log))
	for _, r := range s.log {
		if r.Status == StatusPending {
			out = append(out, r)
		}
	}
	return out
}

// All returns the full request history in insertion order.
func (s *Store) All() []RideRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RideRequest, len(s.log))
	copy(out, s.log)
	return out
}

// Get returns the request with the given id.
func (s *Store) Get(id types.ID) (RideRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return RideRequest{}, false
	}
	return s.log[i], true
}

// MarkAssigned transitions the given requests to assigned. Re-marking an
// already-assigned request is a no-op. Unknown ids are ignored.
func (s *Store) MarkAssigned(ids []types.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if i, ok := s.byID[id]; ok {
			s.log[i].Status = StatusAssigned
		}
	}
}

// Total reports how many requests have ever been accepted. Monotonic,
// never decremented.
func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// CountByStatus reports how many requests currently hold the given status.
func (s *Store) CountByStatus(st Status) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.log {
		if r.Status == st {
			n++
		}
	}
	return n
}
