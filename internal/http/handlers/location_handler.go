// README: Catalog handler exposing the known locations.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lastmile/internal/catalog"
)

type LocationHandler struct {
	catalog *catalog.Catalog
}

func NewLocationHandler(cat *catalog.Catalog) *LocationHandler {
	return &LocationHandler{catalog: cat}
}

func (h *LocationHandler) List(c *gin.Context) {
	all := h.catalog.All()
	writeJSON(c, http.StatusOK, gin.H{"locations": all, "count": len(all)})
}
