// README: Demand generator produces synthetic ride requests for demos and load checks.
package demand

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"

	"lastmile/internal/catalog"
	"lastmile/internal/modules/request"
)

var ErrInvalidCount = errors.New("generation count must be positive")

const maxBatch = 200

// Generator feeds random origin/destination pairs through the normal
// submission path so generated demand is validated like real demand.
type Generator struct {
	requests *request.Service
	catalog  *catalog.Catalog
	rng      *rand.Rand
	log      *slog.Logger
}

func NewGenerator(requests *request.Service, cat *catalog.Catalog, seed int64, log *slog.Logger) *Generator {
	return &Generator{
		requests: requests,
		catalog:  cat,
		rng:      rand.New(rand.NewSource(seed)),
		log:      log,
	}
}

// Generate submits n synthetic requests and returns the ones accepted.
// Origin and destination are drawn from the catalog and always differ,
// so submissions only fail if the request service itself is misconfigured.
func (g *Generator) Generate(ctx context.Context, n int) ([]request.RideRequest, error) {
	if n <= 0 || n > maxBatch {
		return nil, ErrInvalidCount
	}

	locations := g.catalog.All()
	if len(locations) < 2 {
		return nil, errors.New("catalog too small to generate demand")
	}

	out := make([]request.RideRequest, 0, n)
	for i := 0; i < n; i++ {
		oi := g.rng.Intn(len(locations))
		di := g.rng.Intn(len(locations) - 1)
		if di >= oi {
			di++
		}

		r, err := g.requests.Submit(ctx, request.SubmitCommand{
			OriginID:      locations[oi].ID,
			DestinationID: locations[di].ID,
			Passengers:    1 + g.rng.Intn(4),
		})
		if err != nil {
			g.log.Warn("generated request rejected", "error", err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
