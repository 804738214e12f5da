// README: Ride request handlers for submit/list/get.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lastmile/internal/modules/dispatch"
	"lastmile/internal/modules/request"
	"lastmile/internal/types"
)

type RequestHandler struct {
	requests *request.Service
	dispatch *dispatch.Service
}

func NewRequestHandler(requests *request.Service, dispatch *dispatch.Service) *RequestHandler {
	return &RequestHandler{requests: requests, dispatch: dispatch}
}

type createRequestReq struct {
	OriginID      string `json:"origin_id"`
	DestinationID string `json:"destination_id"`
	Passengers    int    `json:"passengers"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.OriginID == "" || req.DestinationID == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	r, err := h.requests.Submit(c.Request.Context(), request.SubmitCommand{
		OriginID:      types.ID(req.OriginID),
		DestinationID: types.ID(req.DestinationID),
		Passengers:    req.Passengers,
	})
	if err != nil {
		writeRequestError(c, err)
		return
	}
	h.dispatch.Notify()
	writeJSON(c, http.StatusCreated, r)
}

func (h *RequestHandler) List(c *gin.Context) {
	pending := h.requests.Pending()
	writeJSON(c, http.StatusOK, gin.H{"pending": pending, "count": len(pending)})
}

func (h *RequestHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing request id")
		return
	}
	r, err := h.requests.Get(types.ID(id))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}
