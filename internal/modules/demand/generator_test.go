package demand

import (
	"context"
	"log/slog"
	"testing"

	"lastmile/internal/catalog"
	"lastmile/internal/modules/request"
)

func newTestGenerator(t *testing.T) (*Generator, *request.Service) {
	t.Helper()
	cat := catalog.New()
	svc := request.NewService(request.NewStore(), cat, nil, 16, slog.Default())
	return NewGenerator(svc, cat, 42, slog.Default()), svc
}

func TestGenerateSubmitsValidRequests(t *testing.T) {
	gen, svc := newTestGenerator(t)

	got, err := gen.Generate(context.Background(), 25)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(got) != 25 {
		t.Fatalf("accepted = %d, want 25", len(got))
	}
	if pending := svc.Pending(); len(pending) != 25 {
		t.Fatalf("pending = %d, want 25", len(pending))
	}
	for _, r := range got {
		if r.Origin.ID == r.Destination.ID {
			t.Errorf("request %s has equal origin and destination", r.ID)
		}
		if r.Passengers < 1 || r.Passengers > 4 {
			t.Errorf("request %s passengers = %d", r.ID, r.Passengers)
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	genA, _ := newTestGenerator(t)
	genB, _ := newTestGenerator(t)

	a, _ := genA.Generate(context.Background(), 10)
	b, _ := genB.Generate(context.Background(), 10)
	for i := range a {
		if a[i].Origin.ID != b[i].Origin.ID || a[i].Destination.ID != b[i].Destination.ID || a[i].Passengers != b[i].Passengers {
			t.Fatalf("run diverged at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateRejectsBadCount(t *testing.T) {
	gen, _ := newTestGenerator(t)
	for _, n := range []int{0, -3, maxBatch + 1} {
		if _, err := gen.Generate(context.Background(), n); err != ErrInvalidCount {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidCount", n, err)
		}
	}
}
