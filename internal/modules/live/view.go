// README: Live route view reconciles locally built routes with the authoritative feed.
package live

import (
	"log/slog"
	"sync"

	"lastmile/internal/modules/route"
	"lastmile/internal/obs"
)

// View is the single published set of current routes. Per key, a route
// moves absent → local → authoritative; authoritative data replaces local
// data outright and is retired after it has been missing from the feed
// for retireAfter consecutive polls. Only this type writes to the
// published set; the builder and the poller are producers through its API.
type View struct {
	mu          sync.RWMutex
	entries     map[string]*entry
	order       []string
	retireAfter int
	log         *slog.Logger
}

type entry struct {
	route      route.Route
	provenance Provenance
	// misses counts consecutive feed polls an authoritative key was
	// absent from. Local entries do not track misses: an empty feed is a
	// steady-state condition, not a reason to drop local routes.
	misses int
}

func NewView(retireAfter int, log *slog.Logger) *View {
	if retireAfter < 1 {
		retireAfter = 1
	}
	return &View{
		entries:     make(map[string]*entry),
		retireAfter: retireAfter,
		log:         log,
	}
}

// PublishLocal adds or replaces the local route for its key. A key the
// feed has already claimed stays authoritative; the late local result is
// discarded rather than downgrading the entry.
func (v *View) PublishLocal(r route.Route) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[r.Key]
	if ok && e.provenance == ProvenanceAuthoritative {
		v.log.Debug("dropping local route for authoritative key", "key", r.Key)
		return
	}
	if !ok {
		v.entries[r.Key] = &entry{route: r, provenance: ProvenanceLocal}
		v.order = append(v.order, r.Key)
	} else {
		e.route = r
		e.provenance = ProvenanceLocal
	}
	v.updateGauges()
}

// ApplyFeed reconciles one poll cycle in a single atomic merge: every
// returned route becomes (or refreshes) the authoritative entry for its
// key, and every authoritative key absent from the result accrues a miss,
// retiring after retireAfter consecutive misses. A failed poll is applied
// as an empty result.
func (v *View) ApplyFeed(routes []route.Route) {
	v.mu.Lock()
	defer v.mu.Unlock()

	present := make(map[string]bool, len(routes))
	for _, r := range routes {
		present[r.Key] = true

		e, ok := v.entries[r.Key]
		if !ok {
			v.entries[r.Key] = &entry{route: r, provenance: ProvenanceAuthoritative}
			v.order = append(v.order, r.Key)
			continue
		}
		// Replacement is wholesale, never field-by-field.
		e.route = r
		e.provenance = ProvenanceAuthoritative
		e.misses = 0
	}

	var retired []string
	for key, e := range v.entries {
		if e.provenance != ProvenanceAuthoritative || present[key] {
			continue
		}
		e.misses++
		if e.misses >= v.retireAfter {
			retired = append(retired, key)
		}
	}
	for _, key := range retired {
		delete(v.entries, key)
		v.removeFromOrder(key)
		v.log.Info("retired route absent from feed", "key", key)
	}

	v.updateGauges()
}

// Snapshot returns the published set in stable publication order. Readers
// never observe a partially merged set.
func (v *View) Snapshot() []Published {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]Published, 0, len(v.order))
	for _, key := range v.order {
		if e, ok := v.entries[key]; ok {
			out = append(out, Published{Route: e.route, Provenance: e.provenance})
		}
	}
	return out
}

// Get returns the published route for a key.
func (v *View) Get(key string) (Published, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	e, ok := v.entries[key]
	if !ok {
		return Published{}, false
	}
	return Published{Route: e.route, Provenance: e.provenance}, true
}

// TotalCO2SavedKg sums the savings across the published set.
func (v *View) TotalCO2SavedKg() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var total float64
	for _, e := range v.entries {
		total += e.route.CO2SavedKg
	}
	return total
}

func (v *View) removeFromOrder(key string) {
	for i, k := range v.order {
		if k == key {
			v.order = append(v.order[:i], v.order[i+1:]...)
			return
		}
	}
}

// updateGauges is called with the lock held.
func (v *View) updateGauges() {
	var local, authoritative float64
	for _, e := range v.entries {
		if e.provenance == ProvenanceLocal {
			local++
		} else {
			authoritative++
		}
	}
	obs.PublishedRoutes.WithLabelValues(string(ProvenanceLocal)).Set(local)
	obs.PublishedRoutes.WithLabelValues(string(ProvenanceAuthoritative)).Set(authoritative)
}
