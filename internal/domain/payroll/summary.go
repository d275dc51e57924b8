package payroll

import (
	"fmt"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryStatus represents the lifecycle state of a payroll summary
type SummaryStatus string

const (
	// StatusDraft is the result of a manual (lenient) calculation
	StatusDraft SummaryStatus = "DRAFT"
	// StatusPendingApproval is the result of a successful automatic calculation
	StatusPendingApproval SummaryStatus = "PENDING_APPROVAL"
	// StatusCalculationPending means trips in the period are still unfinished
	StatusCalculationPending SummaryStatus = "CALCULATION_PENDING"
	// StatusError means a strict calculation hit trips without a usable rate
	StatusError SummaryStatus = "ERROR"
	// StatusApproved is terminal: the summary and its details are frozen
	StatusApproved SummaryStatus = "APPROVED"
)

// IsValid checks if the status is a valid SummaryStatus
func (s SummaryStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusCalculationPending, StatusError, StatusApproved:
		return true
	}
	return false
}

// String returns the string representation of SummaryStatus
func (s SummaryStatus) String() string {
	return string(s)
}

// IsTerminal returns true once no further transitions are allowed
func (s SummaryStatus) IsTerminal() bool {
	return s == StatusApproved
}

// CanApprove returns true if the summary can be approved from this status
func (s SummaryStatus) CanApprove() bool {
	return s == StatusPendingApproval
}

// SummaryTotals holds the component amounts a calculation pass produces.
// All values are non-negative except OtherItemsTotal, which is signed.
type SummaryTotals struct {
	CommissionFromTrips      decimal.Decimal
	ExpensesToReimburse      decimal.Decimal
	ExpensesToDeduct         decimal.Decimal
	GuaranteedMinimumApplied decimal.Decimal
	AdvancesDeducted         decimal.Decimal
	OtherItemsTotal          decimal.Decimal
}

// Net returns the payable amount the components sum to
func (t SummaryTotals) Net() decimal.Decimal {
	return t.CommissionFromTrips.
		Add(t.ExpensesToReimburse).
		Add(t.GuaranteedMinimumApplied).
		Add(t.OtherItemsTotal).
		Sub(t.ExpensesToDeduct).
		Sub(t.AdvancesDeducted)
}

// PayrollSummary is the per-driver, per-period settlement aggregate. The
// commission fraction and guaranteed minimum are snapshotted at calculation
// time so later history changes never alter an existing summary.
type PayrollSummary struct {
	shared.BaseEntity
	PeriodID                 uuid.UUID            `json:"period_id"`
	DriverID                 uuid.UUID            `json:"driver_id"`
	CommissionPercentageUsed valueobject.Fraction `json:"commission_percentage_used"`
	MinimumGuaranteedUsed    decimal.Decimal      `json:"minimum_guaranteed_used"`
	CommissionFromTrips      decimal.Decimal      `json:"commission_from_trips"`
	ExpensesToReimburse      decimal.Decimal      `json:"expenses_to_reimburse"`
	ExpensesToDeduct         decimal.Decimal      `json:"expenses_to_deduct"`
	GuaranteedMinimumApplied decimal.Decimal      `json:"guaranteed_minimum_applied"`
	AdvancesDeducted         decimal.Decimal      `json:"advances_deducted"`
	OtherItemsTotal          decimal.Decimal      `json:"other_items_total"`
	BalanceInFavor           decimal.Decimal      `json:"balance_in_favor"`
	BalanceAgainst           decimal.Decimal      `json:"balance_against"`
	TotalAmount              decimal.Decimal      `json:"total_amount"`
	Status                   SummaryStatus        `json:"status"`
	ErrorMessage             string               `json:"error_message"`
	IsAutoGenerated          bool                 `json:"is_auto_generated"`
	Notes                    string               `json:"notes"`
	ApprovedAt               *time.Time           `json:"approved_at"`
}

// NewPayrollSummary creates a zeroed draft summary with snapshotted
// commission and minimum values.
func NewPayrollSummary(periodID, driverID uuid.UUID, commission valueobject.Fraction, minimum decimal.Decimal, autoGenerated bool) *PayrollSummary {
	return &PayrollSummary{
		BaseEntity:               shared.NewBaseEntity(),
		PeriodID:                 periodID,
		DriverID:                 driverID,
		CommissionPercentageUsed: commission,
		MinimumGuaranteedUsed:    minimum,
		CommissionFromTrips:      decimal.Zero,
		ExpensesToReimburse:      decimal.Zero,
		ExpensesToDeduct:         decimal.Zero,
		GuaranteedMinimumApplied: decimal.Zero,
		AdvancesDeducted:         decimal.Zero,
		OtherItemsTotal:          decimal.Zero,
		BalanceInFavor:           decimal.Zero,
		BalanceAgainst:           decimal.Zero,
		TotalAmount:              decimal.Zero,
		Status:                   StatusDraft,
		IsAutoGenerated:          autoGenerated,
	}
}

// ApplyTotals writes a calculation result into the summary and moves it to
// its post-calculation status: DRAFT for manual runs, PENDING_APPROVAL for
// automatic ones.
func (s *PayrollSummary) ApplyTotals(totals SummaryTotals) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify an approved summary")
	}
	s.CommissionFromTrips = totals.CommissionFromTrips
	s.ExpensesToReimburse = totals.ExpensesToReimburse
	s.ExpensesToDeduct = totals.ExpensesToDeduct
	s.GuaranteedMinimumApplied = totals.GuaranteedMinimumApplied
	s.AdvancesDeducted = totals.AdvancesDeducted
	s.OtherItemsTotal = totals.OtherItemsTotal
	s.TotalAmount = totals.Net()

	inFavor := totals.CommissionFromTrips.
		Add(totals.ExpensesToReimburse).
		Add(totals.GuaranteedMinimumApplied)
	against := totals.ExpensesToDeduct.Add(totals.AdvancesDeducted)
	if totals.OtherItemsTotal.IsNegative() {
		against = against.Add(totals.OtherItemsTotal.Abs())
	} else {
		inFavor = inFavor.Add(totals.OtherItemsTotal)
	}
	s.BalanceInFavor = inFavor
	s.BalanceAgainst = against

	s.ErrorMessage = ""
	if s.IsAutoGenerated {
		s.Status = StatusPendingApproval
	} else {
		s.Status = StatusDraft
	}
	s.Touch()
	return nil
}

// MarkCalculationPending zeroes the summary because unfinished trips in the
// period could still change its amounts.
func (s *PayrollSummary) MarkCalculationPending() error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify an approved summary")
	}
	s.zeroTotals()
	s.ErrorMessage = ""
	s.Status = StatusCalculationPending
	s.Touch()
	return nil
}

// MarkError zeroes the summary and records why the strict calculation failed
func (s *PayrollSummary) MarkError(message string) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify an approved summary")
	}
	s.zeroTotals()
	s.ErrorMessage = message
	s.Status = StatusError
	s.Touch()
	return nil
}

// Submit moves a manually calculated draft into the approval queue
func (s *PayrollSummary) Submit() error {
	if s.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit summary in %s status", s.Status))
	}
	s.Status = StatusPendingApproval
	s.Touch()
	return nil
}

// Approve finalizes the summary. Only allowed from PENDING_APPROVAL;
// afterwards the summary and its detail rows are immutable.
func (s *PayrollSummary) Approve(notes string) error {
	if !s.Status.CanApprove() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve summary in %s status", s.Status))
	}
	now := time.Now()
	s.Status = StatusApproved
	s.ApprovedAt = &now
	if notes != "" {
		s.Notes = notes
	}
	s.Touch()
	return nil
}

// IsApproved returns true once the summary is frozen
func (s *PayrollSummary) IsApproved() bool {
	return s.Status == StatusApproved
}

func (s *PayrollSummary) zeroTotals() {
	s.CommissionFromTrips = decimal.Zero
	s.ExpensesToReimburse = decimal.Zero
	s.ExpensesToDeduct = decimal.Zero
	s.GuaranteedMinimumApplied = decimal.Zero
	s.AdvancesDeducted = decimal.Zero
	s.OtherItemsTotal = decimal.Zero
	s.BalanceInFavor = decimal.Zero
	s.BalanceAgainst = decimal.Zero
	s.TotalAmount = decimal.Zero
}
