package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/apierror"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/dto"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/middleware"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/service"
)

type OccasionsHandler struct{ svc service.OccasionService }

func NewOccasionsHandler(svc service.OccasionService) *OccasionsHandler {
	return &OccasionsHandler{svc: svc}
}

// Create godoc
// @Summary Opens a new occasion with pre-populated entry sections
// @Tags occasions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateOccasionRequest true "Occasion header"
// @Success 201 {object} dto.OccasionRecord
// @Failure 400 {object} apierror.APIError
// @Router /v1/occasions [post]
func (h *OccasionsHandler) Create(c *gin.Context) {
	var req dto.CreateOccasionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var createdBy *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		if uid, err := uuid.Parse(claims.UserID); err == nil {
			createdBy = &uid
		}
	}
	resp, err := h.svc.Create(c.Request.Context(), req, createdBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OccasionsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	resp, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list occasions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Returns the full occasion record with a freshly computed summary
// @Tags occasions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Occasion ID"
// @Success 200 {object} dto.OccasionRecord
// @Failure 404 {object} apierror.APIError
// @Router /v1/occasions/{id} [get]
func (h *OccasionsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("occasion not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OccasionsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateOccasionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeOccasionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OccasionsHandler) Submit(c *gin.Context) {
	h.transition(c, h.svc.Submit)
}

func (h *OccasionsHandler) Finalize(c *gin.Context) {
	h.transition(c, h.svc.Finalize)
}

func (h *OccasionsHandler) Summary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("occasion not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Import godoc
// @Summary Imports a raw occasion record in either schema version
// @Tags occasions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.OccasionRecord
// @Failure 400 {object} apierror.APIError
// @Router /v1/occasions/import [post]
func (h *OccasionsHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 2<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("unreadable body"))
		return
	}
	resp, err := h.svc.Import(c.Request.Context(), raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Export renders the record in the requested schema. The default is the
// current shape; ?format=legacy produces the lossy flat export.
func (h *OccasionsHandler) Export(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if c.Query("format") != "legacy" {
		h.Get(c)
		return
	}
	raw, err := h.svc.ExportLegacy(c.Request.Context(), id)
	if err != nil {
		writeOccasionError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *OccasionsHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*dto.OccasionRecord, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := fn(c.Request.Context(), id)
	if err != nil {
		writeOccasionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

func writeOccasionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("occasion not found"))
	case errors.Is(err, service.ErrOccasionFinalized), errors.Is(err, service.ErrBadTransition):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
