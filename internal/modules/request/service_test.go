// README: Request service tests (validation, ordering, assignment).
package request

import (
	"context"
	"log/slog"
	"testing"

	"lastmile/internal/catalog"
	"lastmile/internal/types"
)

const testMaxPassengers = 16

func newTestService() *Service {
	return NewService(NewStore(), catalog.New(), nil, testMaxPassengers, slog.Default())
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name    string
		cmd     SubmitCommand
		wantErr error
	}{
		{"zero passengers", SubmitCommand{OriginID: "larnaca", DestinationID: "platres", Passengers: 0}, ErrInvalidPassengers},
		{"negative passengers", SubmitCommand{OriginID: "larnaca", DestinationID: "platres", Passengers: -2}, ErrInvalidPassengers},
		{"over largest vehicle", SubmitCommand{OriginID: "larnaca", DestinationID: "platres", Passengers: testMaxPassengers + 1}, ErrInvalidPassengers},
		{"same origin and destination", SubmitCommand{OriginID: "larnaca", DestinationID: "larnaca", Passengers: 2}, ErrSameLocation},
		{"unknown origin", SubmitCommand{OriginID: "atlantis", DestinationID: "platres", Passengers: 2}, ErrUnknownLocation},
		{"unknown destination", SubmitCommand{OriginID: "larnaca", DestinationID: "atlantis", Passengers: 2}, ErrUnknownLocation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(ctx, tc.cmd); err != tc.wantErr {
				t.Errorf("Submit() error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	if got := len(svc.Pending()); got != 0 {
		t.Errorf("rejected submissions must not enter the store, pending = %d", got)
	}
	if total, _, _ := svc.Totals(); total != 0 {
		t.Errorf("rejected submissions must not bump the total, got %d", total)
	}
}

func TestSubmitCreatesPendingWithUniqueIDs(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	seen := make(map[types.ID]bool)
	for i := 0; i < 50; i++ {
		r, err := svc.Submit(ctx, SubmitCommand{OriginID: "larnaca", DestinationID: "platres", Passengers: 1})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if r.Status != StatusPending {
			t.Fatalf("new request status = %s, want pending", r.Status)
		}
		if seen[r.ID] {
			t.Fatalf("id %s reused", r.ID)
		}
		seen[r.ID] = true
	}

	if total, pending, _ := svc.Totals(); total != 50 || pending != 50 {
		t.Errorf("totals = (%d, %d), want (50, 50)", total, pending)
	}
}

func TestPendingPreservesInsertionOrder(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	dests := []types.ID{"platres", "ayia_napa", "kourion", "nicosia"}
	var ids []types.ID
	for _, d := range dests {
		r, err := svc.Submit(ctx, SubmitCommand{OriginID: "larnaca", DestinationID: d, Passengers: 1})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		ids = append(ids, r.ID)
	}

	pending := svc.Pending()
	if len(pending) != len(ids) {
		t.Fatalf("pending = %d, want %d", len(pending), len(ids))
	}
	for i, r := range pending {
		if r.ID != ids[i] {
			t.Errorf("pending[%d] = %s, want %s", i, r.ID, ids[i])
		}
	}
}

func TestMarkAssignedIsIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	r, err := svc.Submit(ctx, SubmitCommand{OriginID: "larnaca", DestinationID: "platres", Passengers: 2})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	svc.MarkAssigned(ctx, []types.ID{r.ID})
	svc.MarkAssigned(ctx, []types.ID{r.ID, "no-such-id"})

	got, err := svc.Get(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusAssigned {
		t.Errorf("status = %s, want assigned", got.Status)
	}
	if len(svc.Pending()) != 0 {
		t.Error("assigned request still listed as pending")
	}
	if total, _, assigned := svc.Totals(); total != 1 || assigned != 1 {
		t.Errorf("totals = (%d, assigned %d), want (1, 1)", total, assigned)
	}
}

func TestGetUnknownRequest(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Get("missing"); err != ErrNotFound {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}
