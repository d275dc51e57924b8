package payroll

import (
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DetailType tags the origin of a summary line item
type DetailType string

const (
	DetailTripCommission    DetailType = "TRIP_COMMISSION"
	DetailExpenseReimburse  DetailType = "EXPENSE_REIMBURSE"
	DetailExpenseDeduct     DetailType = "EXPENSE_DEDUCT"
	DetailAdvance           DetailType = "ADVANCE"
	DetailClientAdvance     DetailType = "CLIENT_ADVANCE"
	DetailOtherItem         DetailType = "OTHER_ITEM"
	DetailGuaranteedMinimum DetailType = "GUARANTEED_MINIMUM"
	DetailMissingRate       DetailType = "MISSING_RATE"
)

// CalculationData carries the machine-readable breakdown behind a detail
// line, for audit and export display.
type CalculationData struct {
	BaseQuantity *decimal.Decimal `json:"base_quantity,omitempty"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	BaseAmount   *decimal.Decimal `json:"base_amount,omitempty"`
	Percentage   *decimal.Decimal `json:"percentage,omitempty"`
}

// PayrollDetail is one itemized, auditable contribution to a summary's
// totals. Detail rows are wiped and regenerated on recalculation, never
// mutated in place.
type PayrollDetail struct {
	shared.BaseEntity
	SummaryID   uuid.UUID        `json:"summary_id"`
	Type        DetailType       `json:"type"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	TripID      *uuid.UUID       `json:"trip_id"`
	ExpenseID   *uuid.UUID       `json:"expense_id"`
	AdvanceID   *uuid.UUID       `json:"advance_id"`
	OtherItemID *uuid.UUID       `json:"other_item_id"`
	Calculation *CalculationData `json:"calculation"`
}

// NewPayrollDetail creates a detail line. SummaryID is assigned when the
// owning summary is persisted.
func NewPayrollDetail(detailType DetailType, description string, amount decimal.Decimal) *PayrollDetail {
	return &PayrollDetail{
		BaseEntity:  shared.NewBaseEntity(),
		Type:        detailType,
		Description: description,
		Amount:      amount,
	}
}

// WithTrip links the detail to its source trip
func (d *PayrollDetail) WithTrip(tripID uuid.UUID) *PayrollDetail {
	d.TripID = &tripID
	return d
}

// WithExpense links the detail to its source expense
func (d *PayrollDetail) WithExpense(expenseID uuid.UUID) *PayrollDetail {
	d.ExpenseID = &expenseID
	return d
}

// WithAdvance links the detail to its source advance payment
func (d *PayrollDetail) WithAdvance(advanceID uuid.UUID) *PayrollDetail {
	d.AdvanceID = &advanceID
	return d
}

// WithOtherItem links the detail to its source item
func (d *PayrollDetail) WithOtherItem(itemID uuid.UUID) *PayrollDetail {
	d.OtherItemID = &itemID
	return d
}

// WithCalculation attaches the calculation breakdown
func (d *PayrollDetail) WithCalculation(data CalculationData) *PayrollDetail {
	d.Calculation = &data
	return d
}
