// README: Dispatch service turns accumulated demand into published routes.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"lastmile/internal/modules/cluster"
	"lastmile/internal/modules/live"
	"lastmile/internal/modules/request"
	"lastmile/internal/modules/route"
	"lastmile/internal/obs"
)

type Service struct {
	requests    *request.Service
	strategy    cluster.Strategy
	builder     *route.Builder
	view        *live.View
	log         *slog.Logger
	threshold   int
	parallelism int

	// trigger is buffered so Notify never blocks a submission; a pending
	// signal already covers any demand that arrives before the next run.
	trigger chan struct{}
}

func NewService(requests *request.Service, strategy cluster.Strategy, builder *route.Builder, view *live.View, threshold, parallelism int, log *slog.Logger) *Service {
	if threshold < 1 {
		threshold = 1
	}
	if parallelism < 1 {
		parallelism = 1
	}
	return &Service{
		requests:    requests,
		strategy:    strategy,
		builder:     builder,
		view:        view,
		log:         log,
		threshold:   threshold,
		parallelism: parallelism,
		trigger:     make(chan struct{}, 1),
	}
}

// Notify signals that demand changed. A dispatch cycle starts only once
// the pending queue reaches the configured threshold.
func (s *Service) Notify() {
	if len(s.requests.Pending()) < s.threshold {
		return
	}
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Flush forces a dispatch cycle regardless of the threshold.
func (s *Service) Flush() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run consumes triggers until the context is cancelled. Cycles never
// overlap: cluster identification and assignment happen on this
// goroutine, only route construction fans out.
func (s *Service) Run(ctx context.Context) {
	s.log.Info("dispatch loop started", "threshold", s.threshold, "parallelism", s.parallelism)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("dispatch loop stopped")
			return
		case <-s.trigger:
			s.runOnce(ctx)
		}
	}
}

// runOnce drains the entire pending queue: every pending request is
// grouped and assigned, then each group's route is built and published.
func (s *Service) runOnce(ctx context.Context) {
	pending := s.requests.Pending()
	if len(pending) == 0 {
		return
	}

	started := time.Now()
	clusters := s.strategy.Clusters(pending)
	obs.ClusteringRuns.Inc()

	// Capacity splits can yield several clusters for one compatibility
	// key in a single run; suffix the later ones so each publishes under
	// a distinct route key.
	seen := make(map[string]int, len(clusters))
	for i, c := range clusters {
		seen[c.Key]++
		if n := seen[c.Key]; n > 1 {
			clusters[i].Key = fmt.Sprintf("%s#%d", c.Key, n)
		}
	}

	for _, c := range clusters {
		s.requests.MarkAssigned(ctx, c.RequestIDs())
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.parallelism)
	for _, c := range clusters {
		wg.Add(1)
		sem <- struct{}{}
		go func(c cluster.Cluster) {
			defer wg.Done()
			defer func() { <-sem }()
			s.buildAndPublish(ctx, c)
		}(c)
	}
	wg.Wait()

	s.log.Info("dispatch cycle complete",
		"pending", len(pending),
		"clusters", len(clusters),
		"elapsed", time.Since(started))
}

func (s *Service) buildAndPublish(ctx context.Context, c cluster.Cluster) {
	r, err := s.builder.Build(ctx, c)
	if err != nil {
		if errors.Is(err, route.ErrUnroutable) {
			s.log.Warn("cluster not routable", "key", c.Key, "requests", len(c.Requests))
			return
		}
		s.log.Error("route build failed", "key", c.Key, "error", err)
		return
	}
	s.view.PublishLocal(r)
	s.log.Info("route published",
		"key", r.Key,
		"class", r.Class.Name,
		"passengers", r.Passengers,
		"distance_km", r.DistanceKm,
		"degraded", r.Degraded)
}
