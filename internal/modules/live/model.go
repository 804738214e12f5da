// README: Published route view types.
package live

import "lastmile/internal/modules/route"

// Provenance records which source of truth a published route came from.
type Provenance string

const (
	// ProvenanceLocal marks a route computed by our own builder.
	ProvenanceLocal Provenance = "local"
	// ProvenanceAuthoritative marks a route from the backend feed, which
	// always wins over a local route for the same key.
	ProvenanceAuthoritative Provenance = "authoritative"
)

// Published is one entry of the live route set.
type Published struct {
	Route      route.Route `json:"route"`
	Provenance Provenance  `json:"provenance"`
}
