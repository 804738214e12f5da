// README: Demo handler for generating synthetic demand.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lastmile/internal/modules/demand"
	"lastmile/internal/modules/dispatch"
)

type DemoHandler struct {
	demand   *demand.Generator
	dispatch *dispatch.Service
}

func NewDemoHandler(gen *demand.Generator, dispatch *dispatch.Service) *DemoHandler {
	return &DemoHandler{demand: gen, dispatch: dispatch}
}

type generateReq struct {
	Count int `json:"count"`
}

func (h *DemoHandler) Generate(c *gin.Context) {
	if h.demand == nil {
		writeError(c, http.StatusServiceUnavailable, "demand generation disabled")
		return
	}
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	generated, err := h.demand.Generate(c.Request.Context(), req.Count)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	h.dispatch.Notify()
	writeJSON(c, http.StatusCreated, gin.H{"generated": len(generated), "requests": generated})
}
