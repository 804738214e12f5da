// README: Request archive backed by PostgreSQL (append-only audit history).
package request

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"lastmile/internal/types"
)

// Archive mirrors the in-memory log into Postgres for audit. The in-memory
// store stays authoritative; archive writes are best-effort.
type Archive struct {
	db *pgxpool.Pool
}

func NewArchive(db *pgxpool.Pool) *Archive {
	return &Archive{db: db}
}

// Init creates the archive table if it does not exist.
func (a *Archive) Init(ctx context.Context) error {
	_, err := a.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ride_requests (
			id             TEXT PRIMARY KEY,
			origin_id      TEXT NOT NULL,
			destination_id TEXT NOT NULL,
			origin_lat     DOUBLE PRECISION NOT NULL,
			origin_lng     DOUBLE PRECISION NOT NULL,
			dest_lat       DOUBLE PRECISION NOT NULL,
			dest_lng       DOUBLE PRECISION NOT NULL,
			passengers     INT NOT NULL,
			status         TEXT NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL,
			assigned_at    TIMESTAMPTZ
		)`)
	return err
}

func (a *Archive) InsertRequest(ctx context.Context, r RideRequest) error {
	_, err := a.db.Exec(ctx, `
		INSERT INTO ride_requests (
			id, origin_id, destination_id,
			origin_lat, origin_lng, dest_lat, dest_lng,
			passengers, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		string(r.ID),
		string(r.Origin.ID),
		string(r.Destination.ID),
		r.Origin.Lat, r.Origin.Lng,
		r.Destination.Lat, r.Destination.Lng,
		r.Passengers,
		string(r.Status),
		r.CreatedAt,
	)
	return err
}

func (a *Archive) MarkAssigned(ctx context.Context, ids []types.ID) error {
	for _, id := range ids {
		_, err := a.db.Exec(ctx, `
			UPDATE ride_requests
			SET status = $1, assigned_at = NOW()
			WHERE id = $2 AND status <> $1`,
			string(StatusAssigned), string(id),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
