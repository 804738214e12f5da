// README: Prometheus instrumentation shared by the dispatch pipeline.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lastmile_requests_submitted_total",
		Help: "Total number of ride requests accepted into the store",
	})

	RequestsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lastmile_requests_rejected_total",
		Help: "Total number of ride submissions rejected by validation",
	})

	ClusteringRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lastmile_clustering_runs_total",
		Help: "Total number of completed clustering runs",
	})

	RoutesBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lastmile_routes_built_total",
		Help: "Total number of routes built, by geometry source",
	}, []string{"source"})

	RoutingFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lastmile_routing_fallbacks_total",
		Help: "Total number of provider failures recovered with straight-line geometry",
	})

	FeedPollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lastmile_feed_poll_failures_total",
		Help: "Total number of authoritative feed polls that failed",
	})

	PublishedRoutes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lastmile_published_routes",
		Help: "Number of routes in the published view, by provenance",
	}, []string{"provenance"})
)
