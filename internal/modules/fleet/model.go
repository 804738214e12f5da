// README: Fleet vehicle position types.
package fleet

import (
	"time"

	"lastmile/internal/types"
)

// VehiclePosition is the last reported position of one vehicle. Positions
// feed the renderer; route assembly never depends on them.
type VehiclePosition struct {
	VehicleID  types.ID    `json:"vehicle_id"`
	Position   types.Point `json:"position"`
	RecordedAt time.Time   `json:"recorded_at"`
}
