package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/apierror"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/service"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

type reportResponse struct {
	ID         string  `json:"id"`
	OccasionID string  `json:"occasionId"`
	Status     string  `json:"status"`
	EmailedTo  *string `json:"emailedTo,omitempty"`
	RetryCount int     `json:"retryCount"`
	LastError  *string `json:"lastError,omitempty"`
}

func renderReport(r *model.ComplianceReport) reportResponse {
	return reportResponse{
		ID:         r.ID.String(),
		OccasionID: r.OccasionID.String(),
		Status:     r.Status,
		EmailedTo:  r.EmailedTo,
		RetryCount: r.RetryCount,
		LastError:  r.LastError,
	}
}

// GetByOccasion godoc
// @Summary Returns the compliance report status for an occasion
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param occasion_id path string true "Occasion ID"
// @Success 200 {object} handler.reportResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/reports/{occasion_id} [get]
func (h *ReportsHandler) GetByOccasion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("occasion_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	report, err := h.svc.GetByOccasion(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("report not found"))
		return
	}
	c.JSON(http.StatusOK, renderReport(report))
}

func (h *ReportsHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	path, err := h.svc.PDFPath(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotReady) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusNotFound, apierror.New("report not found"))
		return
	}
	c.FileAttachment(path, "occasion_report.pdf")
}

func (h *ReportsHandler) Retry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	report, err := h.svc.Retry(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, renderReport(report))
}
