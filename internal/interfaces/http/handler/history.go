package handler

import (
	"time"

	payrollapp "github.com/fleet/backend/internal/application/payroll"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// HistoryHandler handles commission and guaranteed-minimum history endpoints.
// The API speaks percentages (15 means 15%); internally rates are fractions.
type HistoryHandler struct {
	BaseHandler
	historyService *payrollapp.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService *payrollapp.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// SetCommissionRequest represents a request to set a driver's commission rate.
// An omitted effective_from means the change applies from today.
type SetCommissionRequest struct {
	Percentage    float64 `json:"percentage" binding:"min=0,max=100"`
	EffectiveFrom string  `json:"effective_from"`
}

// SetMinimumGuaranteedRequest represents a request to set a driver's guaranteed minimum
type SetMinimumGuaranteedRequest struct {
	Amount        float64 `json:"amount" binding:"min=0"`
	EffectiveFrom string  `json:"effective_from"`
}

// parseEffectiveFrom parses an optional YYYY-MM-DD start date, defaulting
// to the current date
func parseEffectiveFrom(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return parseDate(s)
}

// UpdateCommissionRequest updates an existing entry's percentage.
// Validity dates are immutable: changing them would rewrite past settlements.
type UpdateCommissionRequest struct {
	Percentage float64 `json:"percentage" binding:"min=0,max=100"`
}

// UpdateMinimumGuaranteedRequest updates an existing entry's amount
type UpdateMinimumGuaranteedRequest struct {
	Amount float64 `json:"amount" binding:"min=0"`
}

// CommissionEntryResponse represents a commission history entry
type CommissionEntryResponse struct {
	ID             string     `json:"id"`
	DriverID       string     `json:"driver_id"`
	Percentage     float64    `json:"percentage"`
	EffectiveFrom  time.Time  `json:"effective_from"`
	EffectiveUntil *time.Time `json:"effective_until"`
}

func toCommissionResponse(e *payroll.CommissionHistoryEntry) CommissionEntryResponse {
	return CommissionEntryResponse{
		ID:             e.ID.String(),
		DriverID:       e.DriverID.String(),
		Percentage:     e.Percentage.Percent().InexactFloat64(),
		EffectiveFrom:  e.EffectiveFrom,
		EffectiveUntil: e.EffectiveUntil,
	}
}

// SetCommission godoc
// @Summary  Set a driver's commission rate from a date onward
// @Tags     history
// @Router   /drivers/{id}/commission [post]
func (h *HistoryHandler) SetCommission(c *gin.Context) {
	driverID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}
	var req SetCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	effectiveFrom, err := parseEffectiveFrom(req.EffectiveFrom)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	fraction, err := valueobject.NewFractionFromPercent(decimal.NewFromFloat(req.Percentage))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	entry, err := h.historyService.SetCommission(c.Request.Context(), driverID, fraction, effectiveFrom)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, toCommissionResponse(entry))
}

// ListCommission godoc
// @Summary  List a driver's commission history, newest first
// @Tags     history
// @Router   /drivers/{id}/commission [get]
func (h *HistoryHandler) ListCommission(c *gin.Context) {
	driverID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}
	entries, err := h.historyService.ListCommission(c.Request.Context(), driverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	responses := make([]CommissionEntryResponse, len(entries))
	for i := range entries {
		responses[i] = toCommissionResponse(&entries[i])
	}
	h.Success(c, responses)
}

// UpdateCommission godoc
// @Summary  Correct the percentage of an existing commission entry
// @Tags     history
// @Router   /commission-history/{id} [put]
func (h *HistoryHandler) UpdateCommission(c *gin.Context) {
	entryID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}
	var req UpdateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	fraction, err := valueobject.NewFractionFromPercent(decimal.NewFromFloat(req.Percentage))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	entry, err := h.historyService.UpdateCommissionValue(c.Request.Context(), entryID, fraction)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, toCommissionResponse(entry))
}

// SetMinimumGuaranteed godoc
// @Summary  Set a driver's guaranteed minimum from a date onward
// @Tags     history
// @Router   /drivers/{id}/minimum-guaranteed [post]
func (h *HistoryHandler) SetMinimumGuaranteed(c *gin.Context) {
	driverID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}
	var req SetMinimumGuaranteedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	effectiveFrom, err := parseEffectiveFrom(req.EffectiveFrom)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	entry, err := h.historyService.SetMinimumGuaranteed(c.Request.Context(), driverID, decimal.NewFromFloat(req.Amount), effectiveFrom)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, entry)
}

// ListMinimumGuaranteed godoc
// @Summary  List a driver's guaranteed-minimum history, newest first
// @Tags     history
// @Router   /drivers/{id}/minimum-guaranteed [get]
func (h *HistoryHandler) ListMinimumGuaranteed(c *gin.Context) {
	driverID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}
	entries, err := h.historyService.ListMinimumGuaranteed(c.Request.Context(), driverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entries)
}

// UpdateMinimumGuaranteed godoc
// @Summary  Correct the amount of an existing guaranteed-minimum entry
// @Tags     history
// @Router   /minimum-guaranteed-history/{id} [put]
func (h *HistoryHandler) UpdateMinimumGuaranteed(c *gin.Context) {
	entryID, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}
	var req UpdateMinimumGuaranteedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.historyService.UpdateMinimumGuaranteedValue(c.Request.Context(), entryID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entry)
}
