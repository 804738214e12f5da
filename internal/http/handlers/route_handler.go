// README: Live route handlers for the published route view and stats.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lastmile/internal/modules/live"
	"lastmile/internal/modules/request"
)

type RouteHandler struct {
	view     *live.View
	requests *request.Service
}

func NewRouteHandler(view *live.View, requests *request.Service) *RouteHandler {
	return &RouteHandler{view: view, requests: requests}
}

func (h *RouteHandler) Active(c *gin.Context) {
	snap := h.view.Snapshot()
	writeJSON(c, http.StatusOK, gin.H{"routes": snap, "count": len(snap)})
}

func (h *RouteHandler) Get(c *gin.Context) {
	key := c.Param("key")
	p, ok := h.view.Get(key)
	if !ok {
		writeError(c, http.StatusNotFound, "no active route for key")
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *RouteHandler) Stats(c *gin.Context) {
	total, pending, assigned := h.requests.Totals()
	snap := h.view.Snapshot()

	local, authoritative := 0, 0
	for _, p := range snap {
		if p.Provenance == live.ProvenanceAuthoritative {
			authoritative++
		} else {
			local++
		}
	}

	writeJSON(c, http.StatusOK, gin.H{
		"requests": gin.H{
			"total":    total,
			"pending":  pending,
			"assigned": assigned,
		},
		"routes": gin.H{
			"active":        len(snap),
			"local":         local,
			"authoritative": authoritative,
		},
		"co2_saved_kg": h.view.TotalCO2SavedKg(),
	})
}
