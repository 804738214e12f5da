// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lastmile/internal/modules/demand"
	"lastmile/internal/modules/fleet"
	"lastmile/internal/modules/request"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, request.ErrInvalidPassengers),
		errors.Is(err, request.ErrSameLocation),
		errors.Is(err, request.ErrUnknownLocation),
		errors.Is(err, demand.ErrInvalidCount),
		errors.Is(err, fleet.ErrInvalidPosition):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, request.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
