// README: Ride request aggregate and status definitions.
package request

import (
	"time"

	"lastmile/internal/catalog"
	"lastmile/internal/types"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAssigned Status = "assigned"
)

// RideRequest is a point-to-point demand entry. Requests are append-only:
// the only mutation ever applied is the pending -> assigned transition,
// and they are retained for the process lifetime as history.
type RideRequest struct {
	ID          types.ID         `json:"id"`
	Origin      catalog.Location `json:"origin"`
	Destination catalog.Location `json:"destination"`
	Passengers  int              `json:"passengers"`
	CreatedAt   time.Time        `json:"created_at"`
	Status      Status           `json:"status"`
}
