package payroll

import (
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionHistoryEntry is a time-ranged fact: the driver's commission
// fraction valid over [EffectiveFrom, EffectiveUntil]. A nil EffectiveUntil
// marks the currently open entry; for a given driver entries never overlap
// and at most one is open.
type CommissionHistoryEntry struct {
	shared.BaseEntity
	DriverID       uuid.UUID            `json:"driver_id"`
	Percentage     valueobject.Fraction `json:"percentage"`
	EffectiveFrom  time.Time            `json:"effective_from"`
	EffectiveUntil *time.Time           `json:"effective_until"`
}

// NewCommissionHistoryEntry creates an open-ended entry starting at effectiveFrom
func NewCommissionHistoryEntry(driverID uuid.UUID, percentage valueobject.Fraction, effectiveFrom time.Time) *CommissionHistoryEntry {
	return &CommissionHistoryEntry{
		BaseEntity:    shared.NewBaseEntity(),
		DriverID:      driverID,
		Percentage:    percentage,
		EffectiveFrom: effectiveFrom,
	}
}

// Covers reports whether the entry's validity interval contains date
func (e *CommissionHistoryEntry) Covers(date time.Time) bool {
	if date.Before(e.EffectiveFrom) {
		return false
	}
	return e.EffectiveUntil == nil || !date.After(*e.EffectiveUntil)
}

// IsOpen reports whether this is the driver's currently active entry
func (e *CommissionHistoryEntry) IsOpen() bool {
	return e.EffectiveUntil == nil
}

// CloseAt ends the entry's validity. Closing an already-closed entry is a
// history-integrity violation.
func (e *CommissionHistoryEntry) CloseAt(until time.Time) error {
	if e.EffectiveUntil != nil {
		return shared.NewDomainError("INVALID_STATE", "History entry is already closed")
	}
	e.EffectiveUntil = &until
	e.Touch()
	return nil
}

// MinimumGuaranteedEntry is the guaranteed-minimum counterpart of
// CommissionHistoryEntry: a monetary floor valid over a time range.
type MinimumGuaranteedEntry struct {
	shared.BaseEntity
	DriverID       uuid.UUID       `json:"driver_id"`
	Amount         decimal.Decimal `json:"amount"`
	EffectiveFrom  time.Time       `json:"effective_from"`
	EffectiveUntil *time.Time      `json:"effective_until"`
}

// NewMinimumGuaranteedEntry creates an open-ended entry starting at effectiveFrom
func NewMinimumGuaranteedEntry(driverID uuid.UUID, amount decimal.Decimal, effectiveFrom time.Time) *MinimumGuaranteedEntry {
	return &MinimumGuaranteedEntry{
		BaseEntity:    shared.NewBaseEntity(),
		DriverID:      driverID,
		Amount:        amount,
		EffectiveFrom: effectiveFrom,
	}
}

// Covers reports whether the entry's validity interval contains date
func (e *MinimumGuaranteedEntry) Covers(date time.Time) bool {
	if date.Before(e.EffectiveFrom) {
		return false
	}
	return e.EffectiveUntil == nil || !date.After(*e.EffectiveUntil)
}

// IsOpen reports whether this is the driver's currently active entry
func (e *MinimumGuaranteedEntry) IsOpen() bool {
	return e.EffectiveUntil == nil
}

// CloseAt ends the entry's validity
func (e *MinimumGuaranteedEntry) CloseAt(until time.Time) error {
	if e.EffectiveUntil != nil {
		return shared.NewDomainError("INVALID_STATE", "History entry is already closed")
	}
	e.EffectiveUntil = &until
	e.Touch()
	return nil
}
