// README: Cluster types and the pluggable grouping strategy contract.
package cluster

import (
	"lastmile/internal/modules/request"
	"lastmile/internal/types"
)

// Cluster is a transient group of requests that will share one route.
// Key is the destination compatibility key of the seed request.
type Cluster struct {
	Key        string
	Requests   []request.RideRequest
	Passengers int
}

// RequestIDs returns the member ids in cluster order.
func (c Cluster) RequestIDs() []types.ID {
	ids := make([]types.ID, len(c.Requests))
	for i, r := range c.Requests {
		ids[i] = r.ID
	}
	return ids
}

// Strategy partitions a pending-request snapshot into clusters. A strategy
// must be a pure function of its input: same ordered input, same output.
// The deterministic Engine is the baseline implementation; a learned
// policy can be dropped in behind the same contract.
type Strategy interface {
	Clusters(pending []request.RideRequest) []Cluster
}
