package handler

import (
	payrollapp "github.com/fleet/backend/internal/application/payroll"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PayrollHandler handles payroll summary endpoints
type PayrollHandler struct {
	BaseHandler
	calculationService *payrollapp.CalculationService
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(calculationService *payrollapp.CalculationService) *PayrollHandler {
	return &PayrollHandler{calculationService: calculationService}
}

// CalculateRequest represents a request to calculate one driver's settlement
type CalculateRequest struct {
	PeriodID string `json:"period_id" binding:"required,uuid"`
	DriverID string `json:"driver_id" binding:"required,uuid"`
}

// ApproveRequest represents a request to approve a summary
type ApproveRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// Calculate godoc
// @Summary  Calculate a driver's settlement for a period
// @Tags     payroll
// @Router   /summaries/calculate [post]
func (h *PayrollHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	periodID, _ := uuid.Parse(req.PeriodID)
	driverID, _ := uuid.Parse(req.DriverID)

	summary, err := h.calculationService.Calculate(c.Request.Context(), periodID, driverID, false)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Generate godoc
// @Summary  Calculate settlements for every active driver in a period
// @Tags     payroll
// @Router   /periods/{id}/generate [post]
func (h *PayrollHandler) Generate(c *gin.Context) {
	periodID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID format")
		return
	}
	if err := h.calculationService.GenerateForPeriod(c.Request.Context(), periodID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Recalculate godoc
// @Summary  Recalculate an existing summary
// @Tags     payroll
// @Router   /summaries/{id}/recalculate [post]
func (h *PayrollHandler) Recalculate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid summary ID format")
		return
	}
	summary, err := h.calculationService.Recalculate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Submit godoc
// @Summary  Submit a draft summary for approval
// @Tags     payroll
// @Router   /summaries/{id}/submit [post]
func (h *PayrollHandler) Submit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid summary ID format")
		return
	}
	summary, err := h.calculationService.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Approve godoc
// @Summary  Approve a summary
// @Tags     payroll
// @Router   /summaries/{id}/approve [post]
func (h *PayrollHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid summary ID format")
		return
	}
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.BindingError(c, err)
		return
	}

	summary, err := h.calculationService.Approve(c.Request.Context(), id, req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Get godoc
// @Summary  Get a summary with its detail lines
// @Tags     payroll
// @Router   /summaries/{id} [get]
func (h *PayrollHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid summary ID format")
		return
	}
	result, err := h.calculationService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @Summary  List summaries with optional period, driver and status filters
// @Tags     payroll
// @Router   /summaries [get]
func (h *PayrollHandler) List(c *gin.Context) {
	var query struct {
		PeriodID string `form:"period_id" binding:"omitempty,uuid"`
		DriverID string `form:"driver_id" binding:"omitempty,uuid"`
		Status   string `form:"status" binding:"omitempty,oneof=DRAFT PENDING_APPROVAL CALCULATION_PENDING ERROR APPROVED"`
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 || query.PageSize > 100 {
		query.PageSize = 20
	}
	filter := payroll.SummaryFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.PeriodID != "" {
		id, _ := uuid.Parse(query.PeriodID)
		filter.PeriodID = &id
	}
	if query.DriverID != "" {
		id, _ := uuid.Parse(query.DriverID)
		filter.DriverID = &id
	}
	if query.Status != "" {
		status := payroll.SummaryStatus(query.Status)
		filter.Status = &status
	}

	summaries, total, err := h.calculationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, summaries, total, filter.Page, filter.PageSize)
}

// Delete godoc
// @Summary  Delete a non-approved summary
// @Tags     payroll
// @Router   /summaries/{id} [delete]
func (h *PayrollHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid summary ID format")
		return
	}
	if err := h.calculationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
