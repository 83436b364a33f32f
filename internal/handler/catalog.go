package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/apierror"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/catalog"
)

// CatalogHandler serves the static reference data the entry screens need:
// paper products, POS items, session types, and per-session game programs.
type CatalogHandler struct{ cat *catalog.Catalog }

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{cat: cat}
}

func (h *CatalogHandler) PaperTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.cat.PaperTypes())
}

func (h *CatalogHandler) POSItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.cat.POSItems())
}

func (h *CatalogHandler) SessionTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.cat.SessionTypes())
}

func (h *CatalogHandler) Program(c *gin.Context) {
	sessionType := c.Param("sessionType")
	games := h.cat.Program(sessionType)
	if len(games) == 0 {
		c.JSON(http.StatusNotFound, apierror.New("unknown session type"))
		return
	}
	c.JSON(http.StatusOK, games)
}
