// README: Vehicle handlers for fleet positions.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lastmile/internal/modules/fleet"
	"lastmile/internal/types"
)

type VehicleHandler struct {
	fleet *fleet.Service
}

func NewVehicleHandler(svc *fleet.Service) *VehicleHandler {
	return &VehicleHandler{fleet: svc}
}

type updatePositionReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (h *VehicleHandler) List(c *gin.Context) {
	if h.fleet == nil {
		writeError(c, http.StatusServiceUnavailable, "fleet tracking disabled")
		return
	}
	positions, err := h.fleet.Positions(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"vehicles": positions, "count": len(positions)})
}

func (h *VehicleHandler) UpdateLocation(c *gin.Context) {
	if h.fleet == nil {
		writeError(c, http.StatusServiceUnavailable, "fleet tracking disabled")
		return
	}
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing vehicle id")
		return
	}
	var req updatePositionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.fleet.UpdatePosition(c.Request.Context(), fleet.Update{
		VehicleID: types.ID(id),
		Position:  types.Point{Lat: req.Lat, Lng: req.Lng},
	})
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
