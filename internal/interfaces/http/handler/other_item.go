package handler

import (
	payrollapp "github.com/fleet/backend/internal/application/payroll"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OtherItemHandler handles manually entered settlement item endpoints
type OtherItemHandler struct {
	BaseHandler
	otherItemService *payrollapp.OtherItemService
}

// NewOtherItemHandler creates a new OtherItemHandler
func NewOtherItemHandler(otherItemService *payrollapp.OtherItemService) *OtherItemHandler {
	return &OtherItemHandler{otherItemService: otherItemService}
}

// CreateOtherItemRequest represents a request to add a settlement item
type CreateOtherItemRequest struct {
	DriverID    string  `json:"driver_id" binding:"required,uuid"`
	PeriodID    string  `json:"period_id" binding:"required,uuid"`
	Type        string  `json:"type" binding:"required,oneof=ADJUSTMENT BONUS EXTRA_CHARGE FINE_WITHOUT_TRIP"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required,max=500"`
	Date        string  `json:"date" binding:"required"`
}

// UpdateOtherItemRequest represents a request to edit a settlement item
type UpdateOtherItemRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required,max=500"`
}

// Create godoc
// @Summary  Add a settlement item for a driver and period
// @Tags     other-items
// @Router   /other-items [post]
func (h *OtherItemHandler) Create(c *gin.Context) {
	var req CreateOtherItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}
	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var createdBy *uuid.UUID
	if userID, err := getUserID(c); err == nil {
		createdBy = &userID
	}

	item, err := h.otherItemService.Create(
		c.Request.Context(),
		driverID,
		periodID,
		payroll.OtherItemType(req.Type),
		decimal.NewFromFloat(req.Amount),
		req.Description,
		date,
		createdBy,
	)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @Summary  Edit a settlement item's amount and description
// @Tags     other-items
// @Router   /other-items/{id} [put]
func (h *OtherItemHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}
	var req UpdateOtherItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.otherItemService.Update(c.Request.Context(), id, decimal.NewFromFloat(req.Amount), req.Description)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// GetByID godoc
// @Summary  Get a settlement item by ID
// @Tags     other-items
// @Router   /other-items/{id} [get]
func (h *OtherItemHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}
	item, err := h.otherItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// ListByDriverAndPeriod godoc
// @Summary  List a driver's settlement items for a period
// @Tags     other-items
// @Router   /other-items [get]
func (h *OtherItemHandler) ListByDriverAndPeriod(c *gin.Context) {
	driverID, err := uuid.Parse(c.Query("driver_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing driver_id")
		return
	}
	periodID, err := uuid.Parse(c.Query("period_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing period_id")
		return
	}

	items, err := h.otherItemService.ListByDriverAndPeriod(c.Request.Context(), driverID, periodID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// Delete godoc
// @Summary  Delete a settlement item
// @Tags     other-items
// @Router   /other-items/{id} [delete]
func (h *OtherItemHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}
	if err := h.otherItemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
