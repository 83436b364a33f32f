package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/apierror"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/service"
)

type LibraryHandler struct{ svc service.LibraryService }

func NewLibraryHandler(svc service.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

// Lookup godoc
// @Summary Looks up a pull-tab deal in the library
// @Tags pulltabs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal identifier"
// @Success 200 {object} catalog.PullTabDeal
// @Failure 404 {object} apierror.APIError
// @Router /v1/pulltabs/library/{id} [get]
func (h *LibraryHandler) Lookup(c *gin.Context) {
	deal, fallback, err := h.svc.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDealNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("pull-tab deal not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("library lookup failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deal": deal, "fallback": fallback})
}
