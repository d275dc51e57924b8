package fleet

import (
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvancePayment represents cash the company handed a driver ahead of
// settlement. Always deducted from the payout of the period it falls in.
type AdvancePayment struct {
	shared.BaseEntity
	DriverID uuid.UUID       `json:"driver_id"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Notes    string          `json:"notes"`
}

// NewAdvancePayment creates a new advance payment
func NewAdvancePayment(driverID uuid.UUID, date time.Time, amount decimal.Decimal) (*AdvancePayment, error) {
	if driverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRIVER", "Advance payment driver is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Advance payment amount must be positive")
	}
	return &AdvancePayment{
		BaseEntity: shared.NewBaseEntity(),
		DriverID:   driverID,
		Date:       date,
		Amount:     amount,
	}, nil
}
