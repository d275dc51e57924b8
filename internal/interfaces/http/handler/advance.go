package handler

import (
	fleetapp "github.com/fleet/backend/internal/application/fleet"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvanceHandler handles cash advance endpoints
type AdvanceHandler struct {
	BaseHandler
	advanceService *fleetapp.AdvanceService
}

// NewAdvanceHandler creates a new AdvanceHandler
func NewAdvanceHandler(advanceService *fleetapp.AdvanceService) *AdvanceHandler {
	return &AdvanceHandler{advanceService: advanceService}
}

// AdvanceRequest represents a request to create or update a cash advance
type AdvanceRequest struct {
	DriverID string  `json:"driver_id" binding:"required,uuid"`
	Date     string  `json:"date" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Notes    string  `json:"notes" binding:"max=500"`
}

// Create godoc
// @Summary  Record a cash advance
// @Tags     advances
// @Router   /advances [post]
func (h *AdvanceHandler) Create(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	advance, err := h.advanceService.Create(c.Request.Context(), driverID, date, decimal.NewFromFloat(req.Amount), req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, advance)
}

// Update godoc
// @Summary  Update a cash advance
// @Tags     advances
// @Router   /advances/{id} [put]
func (h *AdvanceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid advance ID format")
		return
	}
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	advance, err := h.advanceService.Update(c.Request.Context(), id, date, decimal.NewFromFloat(req.Amount), req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, advance)
}

// GetByID godoc
// @Summary  Get a cash advance by ID
// @Tags     advances
// @Router   /advances/{id} [get]
func (h *AdvanceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid advance ID format")
		return
	}
	advance, err := h.advanceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, advance)
}

// List godoc
// @Summary  List cash advances
// @Tags     advances
// @Router   /advances [get]
func (h *AdvanceHandler) List(c *gin.Context) {
	filter := bindListFilter(c)
	advances, total, err := h.advanceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, advances, total, filter.Page, filter.PageSize)
}

// Delete godoc
// @Summary  Delete a cash advance
// @Tags     advances
// @Router   /advances/{id} [delete]
func (h *AdvanceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid advance ID format")
		return
	}
	if err := h.advanceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
