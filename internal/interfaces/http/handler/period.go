package handler

import (
	"fmt"
	"net/http"

	payrollapp "github.com/fleet/backend/internal/application/payroll"
	"github.com/gin-gonic/gin"
)

// PeriodHandler handles payroll period endpoints
type PeriodHandler struct {
	BaseHandler
	periodService *payrollapp.PeriodService
	exporter      payrollapp.Exporter
}

// NewPeriodHandler creates a new PeriodHandler
func NewPeriodHandler(periodService *payrollapp.PeriodService, exporter payrollapp.Exporter) *PeriodHandler {
	return &PeriodHandler{
		periodService: periodService,
		exporter:      exporter,
	}
}

// PeriodRequest represents a request to open or fetch a period
type PeriodRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2100"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// GetOrCreate godoc
// @Summary  Get or create the period for a year and month
// @Tags     periods
// @Router   /periods [post]
func (h *PeriodHandler) GetOrCreate(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	period, err := h.periodService.GetOrCreate(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, period)
}

// GetByID godoc
// @Summary  Get a period by ID
// @Tags     periods
// @Router   /periods/{id} [get]
func (h *PeriodHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID format")
		return
	}
	period, err := h.periodService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, period)
}

// List godoc
// @Summary  List periods, newest first
// @Tags     periods
// @Router   /periods [get]
func (h *PeriodHandler) List(c *gin.Context) {
	filter := bindListFilter(c)
	periods, total, err := h.periodService.List(c.Request.Context(), filter.Page, filter.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, periods, total, filter.Page, filter.PageSize)
}

// Refresh godoc
// @Summary  Refresh the period's unfinished-trips flag
// @Tags     periods
// @Router   /periods/{id}/refresh [post]
func (h *PeriodHandler) Refresh(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID format")
		return
	}
	period, err := h.periodService.RefreshTripsInProgress(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, period)
}

// Export godoc
// @Summary  Download the period's settlement workbook
// @Tags     periods
// @Router   /periods/{id}/export [get]
func (h *PeriodHandler) Export(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID format")
		return
	}
	filename, content, err := h.exporter.ExportPeriod(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
