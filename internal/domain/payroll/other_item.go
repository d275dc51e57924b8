package payroll

import (
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OtherItemType classifies manually entered settlement items
type OtherItemType string

const (
	// OtherItemAdjustment keeps the entered sign unchanged
	OtherItemAdjustment OtherItemType = "ADJUSTMENT"
	// OtherItemBonus always adds to the payout
	OtherItemBonus OtherItemType = "BONUS"
	// OtherItemExtraCharge always subtracts from the payout
	OtherItemExtraCharge OtherItemType = "EXTRA_CHARGE"
	// OtherItemFineWithoutTrip always subtracts from the payout
	OtherItemFineWithoutTrip OtherItemType = "FINE_WITHOUT_TRIP"
)

// IsValid checks if the type is a valid OtherItemType
func (t OtherItemType) IsValid() bool {
	switch t {
	case OtherItemAdjustment, OtherItemBonus, OtherItemExtraCharge, OtherItemFineWithoutTrip:
		return true
	}
	return false
}

// String returns the string representation of OtherItemType
func (t OtherItemType) String() string {
	return string(t)
}

// DisplayName returns a human-readable label for detail lines
func (t OtherItemType) DisplayName() string {
	switch t {
	case OtherItemAdjustment:
		return "Adjustment"
	case OtherItemBonus:
		return "Bonus"
	case OtherItemExtraCharge:
		return "Extra charge"
	case OtherItemFineWithoutTrip:
		return "Fine"
	default:
		return string(t)
	}
}

// OtherItem is a free-form entry attached to a driver and period:
// an adjustment, bonus, extra charge, or trip-less fine.
type OtherItem struct {
	shared.BaseEntity
	DriverID    uuid.UUID       `json:"driver_id"`
	PeriodID    uuid.UUID       `json:"period_id"`
	Type        OtherItemType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Reference   string          `json:"reference"`
	CreatedBy   *uuid.UUID      `json:"created_by"`
}

// NewOtherItem creates a new item
func NewOtherItem(driverID, periodID uuid.UUID, itemType OtherItemType, amount decimal.Decimal, description string, date time.Time) (*OtherItem, error) {
	if driverID == uuid.Nil || periodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Item driver and period are required")
	}
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Item type is not valid")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description is required")
	}
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Item amount cannot be zero")
	}
	return &OtherItem{
		BaseEntity:  shared.NewBaseEntity(),
		DriverID:    driverID,
		PeriodID:    periodID,
		Type:        itemType,
		Amount:      amount,
		Description: description,
		Date:        date,
	}, nil
}

// NormalizedAmount applies the sign rule for the item's type: bonuses are
// forced positive, extra charges and fines forced negative, adjustments
// keep the sign they were entered with.
func (i *OtherItem) NormalizedAmount() decimal.Decimal {
	switch i.Type {
	case OtherItemBonus:
		return i.Amount.Abs()
	case OtherItemExtraCharge, OtherItemFineWithoutTrip:
		return i.Amount.Abs().Neg()
	default:
		return i.Amount
	}
}
