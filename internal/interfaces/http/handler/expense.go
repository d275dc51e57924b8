package handler

import (
	fleetapp "github.com/fleet/backend/internal/application/fleet"
	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles driver expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *fleetapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *fleetapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents a request to create or update an expense
type ExpenseRequest struct {
	DriverID    string  `json:"driver_id" binding:"required,uuid"`
	TripID      string  `json:"trip_id" binding:"omitempty,uuid"`
	Type        string  `json:"type" binding:"required,oneof=PER_DIEM FINE REPAIR FUEL TOLL"`
	Date        string  `json:"date" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=500"`
	PaidByAdmin bool    `json:"paid_by_admin"`
	ReceiptURL  string  `json:"receipt_url" binding:"max=500"`
}

func (r *ExpenseRequest) toInput() (fleetapp.ExpenseInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return fleetapp.ExpenseInput{}, err
	}
	driverID, err := uuid.Parse(r.DriverID)
	if err != nil {
		return fleetapp.ExpenseInput{}, err
	}

	input := fleetapp.ExpenseInput{
		DriverID:    driverID,
		Type:        fleet.ExpenseType(r.Type),
		Date:        date,
		Amount:      decimal.NewFromFloat(r.Amount),
		Description: r.Description,
		PaidByAdmin: r.PaidByAdmin,
		ReceiptURL:  r.ReceiptURL,
	}
	if r.TripID != "" {
		tripID, err := uuid.Parse(r.TripID)
		if err != nil {
			return fleetapp.ExpenseInput{}, err
		}
		input.TripID = &tripID
	}
	return input, nil
}

// Create godoc
// @Summary  Record a new expense
// @Tags     expenses
// @Router   /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid expense payload: "+err.Error())
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, expense)
}

// Update godoc
// @Summary  Update an expense
// @Tags     expenses
// @Router   /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid expense payload: "+err.Error())
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// GetByID godoc
// @Summary  Get an expense by ID
// @Tags     expenses
// @Router   /expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}
	expense, err := h.expenseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// List godoc
// @Summary  List expenses
// @Tags     expenses
// @Router   /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	filter := bindListFilter(c)
	expenses, total, err := h.expenseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// Delete godoc
// @Summary  Delete an expense
// @Tags     expenses
// @Router   /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
