// README: Deterministic destination-key clustering engine.
package cluster

import "lastmile/internal/modules/request"

// Engine groups pending requests by destination compatibility key in a
// single pass over the insertion-ordered snapshot.
//
// Compatibility is keyed by a single discrete attribute (declared region,
// else category), not by distance: two requests with destinations 200 km
// apart but the same declared region are clustered, two requests 2 km
// apart in different regions are not. That keeps the grouping reproducible
// and cheap to reason about.
type Engine struct {
	// maxPassengers is the capacity of the largest vehicle class; no
	// cluster's passenger total may exceed it.
	maxPassengers int
}

func NewEngine(maxPassengers int) *Engine {
	return &Engine{maxPassengers: maxPassengers}
}

// Clusters partitions pending into clusters, preserving insertion order:
// each unused request in turn seeds a cluster, then the remaining unused
// requests are scanned in order and joined when their destination key
// matches the seed's and the passenger total still fits the largest
// vehicle. Every request lands in exactly one cluster.
func (e *Engine) Clusters(pending []request.RideRequest) []Cluster {
	used := make([]bool, len(pending))
	var out []Cluster

	for i, seed := range pending {
		if used[i] {
			continue
		}
		used[i] = true

		c := Cluster{
			Key:        seed.Destination.CompatibilityKey(),
			Requests:   []request.RideRequest{seed},
			Passengers: seed.Passengers,
		}

		for j := i + 1; j < len(pending); j++ {
			if used[j] {
				continue
			}
			cand := pending[j]
			if cand.Destination.CompatibilityKey() != c.Key {
				continue
			}
			if c.Passengers+cand.Passengers > e.maxPassengers {
				continue
			}
			used[j] = true
			c.Requests = append(c.Requests, cand)
			c.Passengers += cand.Passengers
		}

		out = append(out, c)
	}

	return out
}
