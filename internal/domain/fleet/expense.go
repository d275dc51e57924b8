package fleet

import (
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseType represents the category of a driver expense
type ExpenseType string

const (
	ExpensePerDiem ExpenseType = "PER_DIEM"
	ExpenseFine    ExpenseType = "FINE"
	ExpenseRepair  ExpenseType = "REPAIR"
	ExpenseFuel    ExpenseType = "FUEL"
	ExpenseToll    ExpenseType = "TOLL"
)

// IsValid checks if the type is a valid ExpenseType
func (t ExpenseType) IsValid() bool {
	switch t {
	case ExpensePerDiem, ExpenseFine, ExpenseRepair, ExpenseFuel, ExpenseToll:
		return true
	}
	return false
}

// String returns the string representation of ExpenseType
func (t ExpenseType) String() string {
	return string(t)
}

// DisplayName returns a human-readable label for detail lines
func (t ExpenseType) DisplayName() string {
	switch t {
	case ExpensePerDiem:
		return "Per diem"
	case ExpenseFine:
		return "Fine"
	case ExpenseRepair:
		return "Repair"
	case ExpenseFuel:
		return "Fuel"
	case ExpenseToll:
		return "Toll"
	default:
		return string(t)
	}
}

// Expense represents a cost incurred by a driver, optionally tied to a trip.
type Expense struct {
	shared.BaseEntity
	DriverID    uuid.UUID       `json:"driver_id"`
	TripID      *uuid.UUID      `json:"trip_id"`
	Type        ExpenseType     `json:"type"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	PaidByAdmin bool            `json:"paid_by_admin"`
	ReceiptURL  string          `json:"receipt_url"`
}

// NewExpense creates a new expense
func NewExpense(driverID uuid.UUID, expenseType ExpenseType, date time.Time, amount decimal.Decimal) (*Expense, error) {
	if driverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRIVER", "Expense driver is required")
	}
	if !expenseType.IsValid() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_TYPE", "Expense type is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	return &Expense{
		BaseEntity: shared.NewBaseEntity(),
		DriverID:   driverID,
		Type:       expenseType,
		Date:       date,
		Amount:     amount,
	}, nil
}

// Deductible reports whether the expense is withheld from the driver's
// payout. Fines are always deducted in full, regardless of who paid.
func (e *Expense) Deductible() bool {
	return e.Type == ExpenseFine
}

// Reimbursable reports whether the expense is paid back to the driver.
// Every non-fine type is reimbursed only when the driver fronted the cost.
func (e *Expense) Reimbursable() bool {
	if e.Type == ExpenseFine {
		return false
	}
	return !e.PaidByAdmin
}
