package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RateResolver resolves the commission fraction and guaranteed minimum
// valid for a driver at a given date. Implemented by HistoryService.
type RateResolver interface {
	CommissionAt(ctx context.Context, driverID uuid.UUID, date time.Time) (valueobject.Fraction, error)
	MinimumGuaranteedAt(ctx context.Context, driverID uuid.UUID, date time.Time) (decimal.Decimal, error)
}

// PeriodNotifier is told when every summary in a period has been approved.
// Implementations must be idempotent per period.
type PeriodNotifier interface {
	NotifyPeriodApproved(ctx context.Context, periodID uuid.UUID)
}

// SummaryWithDetails bundles a summary with its itemized lines
type SummaryWithDetails struct {
	Summary *payroll.PayrollSummary
	Details []payroll.PayrollDetail
}

// CalculationService runs the per-driver settlement calculation and drives
// the summary lifecycle from calculation through approval.
type CalculationService struct {
	summaryRepo   payroll.SummaryRepository
	periodRepo    payroll.PeriodRepository
	otherItemRepo payroll.OtherItemRepository
	driverRepo    fleet.DriverRepository
	tripRepo      fleet.TripRepository
	expenseRepo   fleet.ExpenseRepository
	advanceRepo   fleet.AdvancePaymentRepository
	rates         RateResolver
	notifier      PeriodNotifier
	logger        *zap.Logger
}

// NewCalculationService creates a new CalculationService. notifier may be
// nil when the approval notification is disabled.
func NewCalculationService(
	summaryRepo payroll.SummaryRepository,
	periodRepo payroll.PeriodRepository,
	otherItemRepo payroll.OtherItemRepository,
	driverRepo fleet.DriverRepository,
	tripRepo fleet.TripRepository,
	expenseRepo fleet.ExpenseRepository,
	advanceRepo fleet.AdvancePaymentRepository,
	rates RateResolver,
	notifier PeriodNotifier,
	logger *zap.Logger,
) *CalculationService {
	return &CalculationService{
		summaryRepo:   summaryRepo,
		periodRepo:    periodRepo,
		otherItemRepo: otherItemRepo,
		driverRepo:    driverRepo,
		tripRepo:      tripRepo,
		expenseRepo:   expenseRepo,
		advanceRepo:   advanceRepo,
		rates:         rates,
		notifier:      notifier,
		logger:        logger,
	}
}

// Calculate builds (or rebuilds) the driver's summary for the period.
// Automatic runs are strict: unfinished trips park the summary in
// CALCULATION_PENDING and trips without a usable rate produce an ERROR
// summary. Manual runs skip unusable trips, leaving an itemized trace.
// The resulting summary status may be ERROR or CALCULATION_PENDING; that
// is a stored outcome, not a failure of this call.
func (s *CalculationService) Calculate(ctx context.Context, periodID, driverID uuid.UUID, automatic bool) (*payroll.PayrollSummary, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	driver, err := s.driverRepo.FindByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	existing, err := s.summaryRepo.FindByPeriodAndDriver(ctx, periodID, driverID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.IsApproved() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot recalculate an approved summary")
	}

	commission, err := s.rates.CommissionAt(ctx, driverID, period.EndDate)
	if err != nil {
		return nil, err
	}
	minimum, err := s.rates.MinimumGuaranteedAt(ctx, driverID, period.EndDate)
	if err != nil {
		return nil, err
	}

	summary := existing
	if summary == nil {
		summary = payroll.NewPayrollSummary(periodID, driverID, commission, minimum, automatic)
	} else {
		summary.CommissionPercentageUsed = commission
		summary.MinimumGuaranteedUsed = minimum
		summary.IsAutoGenerated = automatic
	}

	if automatic {
		unfinished, err := s.tripRepo.CountUnfinishedStartingBetween(ctx, &driverID, period.StartDate, period.EndDate)
		if err != nil {
			return nil, err
		}
		if unfinished > 0 {
			if err := summary.MarkCalculationPending(); err != nil {
				return nil, err
			}
			s.logger.Info("payroll calculation deferred, trips still in progress",
				zap.String("driver", driver.FullName()),
				zap.String("period", period.Label()),
				zap.Int64("unfinished_trips", unfinished))
			return summary, s.persist(ctx, summary, nil, existing != nil)
		}
	}

	trips, err := s.tripRepo.FindFinishedStartingBetween(ctx, driverID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	commissionResult := s.tripCommission(trips, commission, automatic)

	if commissionResult.Outcome == payroll.CommissionMissingRate {
		refs := make([]string, len(commissionResult.MissingRateTrips))
		details := make([]*payroll.PayrollDetail, 0, len(commissionResult.MissingRateTrips))
		for i, mt := range commissionResult.MissingRateTrips {
			refs[i] = mt.Reference
			details = append(details, payroll.NewPayrollDetail(
				payroll.DetailMissingRate,
				fmt.Sprintf("Missing rate: %s", mt.Reference),
				decimal.Zero,
			).WithTrip(mt.TripID))
		}
		if err := summary.MarkError(fmt.Sprintf("Trips without usable rate: %s", strings.Join(refs, "; "))); err != nil {
			return nil, err
		}
		s.logger.Warn("payroll calculation failed, trips without usable rate",
			zap.String("driver", driver.FullName()),
			zap.String("period", period.Label()),
			zap.Int("trips", len(refs)))
		return summary, s.persist(ctx, summary, details, existing != nil)
	}

	details := commissionResult.Details

	expenses, err := s.expenseRepo.FindByDriverBetween(ctx, driverID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	reimburse, deduct, expenseDetails := s.classifyExpenses(expenses)
	details = append(details, expenseDetails...)

	advancesTotal, advanceDetails, err := s.netAdvances(ctx, driverID, period, trips, commissionResult.IncludedTripIDs)
	if err != nil {
		return nil, err
	}
	details = append(details, advanceDetails...)

	otherTotal, otherDetails, err := s.otherItems(ctx, driverID, periodID)
	if err != nil {
		return nil, err
	}
	details = append(details, otherDetails...)

	topUp := minimum.Sub(commissionResult.Total)
	if topUp.IsNegative() {
		topUp = decimal.Zero
	}
	if topUp.IsPositive() {
		details = append(details, payroll.NewPayrollDetail(
			payroll.DetailGuaranteedMinimum,
			fmt.Sprintf("Guaranteed minimum top-up (minimum %s, commission %s)", minimum.StringFixed(2), commissionResult.Total.StringFixed(2)),
			topUp,
		))
	}

	if err := summary.ApplyTotals(payroll.SummaryTotals{
		CommissionFromTrips:      commissionResult.Total,
		ExpensesToReimburse:      reimburse,
		ExpensesToDeduct:         deduct,
		GuaranteedMinimumApplied: topUp,
		AdvancesDeducted:         advancesTotal,
		OtherItemsTotal:          otherTotal,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("payroll summary calculated",
		zap.String("driver", driver.FullName()),
		zap.String("period", period.Label()),
		zap.String("status", summary.Status.String()),
		zap.String("total", summary.TotalAmount.StringFixed(2)))
	return summary, s.persist(ctx, summary, details, existing != nil)
}

// GenerateForPeriod calculates a strict summary for every active driver.
// Per-driver failures are logged and skipped so one driver's bad data does
// not block the rest of the run.
func (s *CalculationService) GenerateForPeriod(ctx context.Context, periodID uuid.UUID) error {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return err
	}
	drivers, err := s.driverRepo.FindActive(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("generating payroll summaries",
		zap.String("period", period.Label()),
		zap.Int("drivers", len(drivers)))
	for i := range drivers {
		if _, err := s.Calculate(ctx, periodID, drivers[i].ID, true); err != nil {
			s.logger.Error("payroll generation failed for driver",
				zap.String("driver", drivers[i].FullName()),
				zap.String("period", period.Label()),
				zap.Error(err))
		}
	}

	unfinished, err := s.tripRepo.CountUnfinishedStartingBetween(ctx, nil, period.StartDate, period.EndDate)
	if err != nil {
		return err
	}
	period.SetTripsInProgress(unfinished > 0)
	return s.periodRepo.Save(ctx, period)
}

// Recalculate reruns the calculation for an existing summary, keeping its
// original strictness.
func (s *CalculationService) Recalculate(ctx context.Context, summaryID uuid.UUID) (*payroll.PayrollSummary, error) {
	summary, err := s.summaryRepo.FindByID(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	return s.Calculate(ctx, summary.PeriodID, summary.DriverID, summary.IsAutoGenerated)
}

// Submit moves a draft summary into the approval queue
func (s *CalculationService) Submit(ctx context.Context, summaryID uuid.UUID) (*payroll.PayrollSummary, error) {
	summary, err := s.summaryRepo.FindByID(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	if err := summary.Submit(); err != nil {
		return nil, err
	}
	if err := s.summaryRepo.Save(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// Approve finalizes a summary. When it is the period's last pending one,
// the period notification is dispatched in the background.
func (s *CalculationService) Approve(ctx context.Context, summaryID uuid.UUID, notes string) (*payroll.PayrollSummary, error) {
	summary, err := s.summaryRepo.FindByID(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	if err := summary.Approve(notes); err != nil {
		return nil, err
	}
	if err := s.summaryRepo.Save(ctx, summary); err != nil {
		return nil, err
	}
	s.logger.Info("payroll summary approved",
		zap.String("summary_id", summary.ID.String()),
		zap.String("total", summary.TotalAmount.StringFixed(2)))

	if s.notifier != nil {
		remaining, err := s.summaryRepo.CountByPeriodNotInStatus(ctx, summary.PeriodID, payroll.StatusApproved)
		if err != nil {
			s.logger.Error("approval count check failed", zap.Error(err))
			return summary, nil
		}
		if remaining == 0 {
			periodID := summary.PeriodID
			go s.notifier.NotifyPeriodApproved(context.WithoutCancel(ctx), periodID)
		}
	}
	return summary, nil
}

// Delete removes a summary and its details. Approved summaries are immutable.
func (s *CalculationService) Delete(ctx context.Context, summaryID uuid.UUID) error {
	summary, err := s.summaryRepo.FindByID(ctx, summaryID)
	if err != nil {
		return err
	}
	if summary.IsApproved() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete an approved summary")
	}
	return s.summaryRepo.Delete(ctx, summaryID)
}

// Get returns a summary with its detail lines
func (s *CalculationService) Get(ctx context.Context, summaryID uuid.UUID) (*SummaryWithDetails, error) {
	summary, err := s.summaryRepo.FindByID(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	details, err := s.summaryRepo.FindDetails(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	return &SummaryWithDetails{Summary: summary, Details: details}, nil
}

// List returns summaries matching the filter
func (s *CalculationService) List(ctx context.Context, filter payroll.SummaryFilter) ([]payroll.PayrollSummary, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	return s.summaryRepo.FindAll(ctx, filter)
}

// tripCommission settles the finished trips. strict aborts on the first
// pass with any unusable trip; lenient skips them but records zero-amount
// trace lines so the gap is visible on the summary.
func (s *CalculationService) tripCommission(trips []fleet.Trip, commission valueobject.Fraction, strict bool) payroll.CommissionResult {
	var missing []payroll.MissingRateTrip
	for i := range trips {
		if !trips[i].HasUsableRate() {
			missing = append(missing, payroll.MissingRateTrip{TripID: trips[i].ID, Reference: trips[i].Reference()})
		}
	}
	if strict && len(missing) > 0 {
		return payroll.CommissionResult{
			Outcome:          payroll.CommissionMissingRate,
			MissingRateTrips: missing,
		}
	}

	total := decimal.Zero
	details := make([]*payroll.PayrollDetail, 0, len(trips))
	var included []uuid.UUID
	pct := commission.Value()
	for i := range trips {
		t := &trips[i]
		if !t.HasUsableRate() {
			details = append(details, payroll.NewPayrollDetail(
				payroll.DetailMissingRate,
				fmt.Sprintf("Skipped, missing rate: %s", t.Reference()),
				decimal.Zero,
			).WithTrip(t.ID))
			continue
		}
		base := t.BaseAmount()
		amount := base.Mul(pct)
		total = total.Add(amount)
		included = append(included, t.ID)

		quantity := t.EstimatedKms
		if t.BillingMode == fleet.BillingPerWeight {
			quantity = t.LoadWeightOnUnload
		}
		rate := t.Rate
		details = append(details, payroll.NewPayrollDetail(
			payroll.DetailTripCommission,
			t.Reference(),
			amount,
		).WithTrip(t.ID).WithCalculation(payroll.CalculationData{
			BaseQuantity: &quantity,
			Rate:         &rate,
			BaseAmount:   &base,
			Percentage:   &pct,
		}))
	}
	return payroll.CommissionResult{
		Outcome:         payroll.CommissionOK,
		Total:           total,
		Details:         details,
		IncludedTripIDs: included,
	}
}

// classifyExpenses splits the period's expenses into reimbursements and
// deductions. Expenses that are neither (non-fine paid by the company) are
// left off the summary entirely.
func (s *CalculationService) classifyExpenses(expenses []fleet.Expense) (reimburse, deduct decimal.Decimal, details []*payroll.PayrollDetail) {
	reimburse, deduct = decimal.Zero, decimal.Zero
	for i := range expenses {
		e := &expenses[i]
		switch {
		case e.Deductible():
			deduct = deduct.Add(e.Amount)
			details = append(details, payroll.NewPayrollDetail(
				payroll.DetailExpenseDeduct,
				fmt.Sprintf("%s %s", e.Type.DisplayName(), e.Date.Format("02/01/2006")),
				e.Amount.Neg(),
			).WithExpense(e.ID))
		case e.Reimbursable():
			reimburse = reimburse.Add(e.Amount)
			details = append(details, payroll.NewPayrollDetail(
				payroll.DetailExpenseReimburse,
				fmt.Sprintf("%s %s", e.Type.DisplayName(), e.Date.Format("02/01/2006")),
				e.Amount,
			).WithExpense(e.ID))
		}
	}
	return reimburse, deduct, details
}

// netAdvances totals the money the driver already received: cash advances
// dated in the period plus client advances on the trips actually settled.
func (s *CalculationService) netAdvances(ctx context.Context, driverID uuid.UUID, period *payroll.PayrollPeriod, trips []fleet.Trip, includedTripIDs []uuid.UUID) (decimal.Decimal, []*payroll.PayrollDetail, error) {
	total := decimal.Zero
	var details []*payroll.PayrollDetail

	advances, err := s.advanceRepo.FindByDriverBetween(ctx, driverID, period.StartDate, period.EndDate)
	if err != nil {
		return decimal.Zero, nil, err
	}
	for i := range advances {
		a := &advances[i]
		if !a.Amount.IsPositive() {
			continue
		}
		total = total.Add(a.Amount)
		details = append(details, payroll.NewPayrollDetail(
			payroll.DetailAdvance,
			fmt.Sprintf("Advance %s", a.Date.Format("02/01/2006")),
			a.Amount.Neg(),
		).WithAdvance(a.ID))
	}

	included := make(map[uuid.UUID]bool, len(includedTripIDs))
	for _, id := range includedTripIDs {
		included[id] = true
	}
	for i := range trips {
		t := &trips[i]
		if !included[t.ID] || !t.ClientAdvancePayment.IsPositive() {
			continue
		}
		total = total.Add(t.ClientAdvancePayment)
		details = append(details, payroll.NewPayrollDetail(
			payroll.DetailClientAdvance,
			fmt.Sprintf("Client advance on %s", t.Reference()),
			t.ClientAdvancePayment.Neg(),
		).WithTrip(t.ID))
	}
	return total, details, nil
}

// otherItems totals the period's manual entries with their sign rules applied
func (s *CalculationService) otherItems(ctx context.Context, driverID, periodID uuid.UUID) (decimal.Decimal, []*payroll.PayrollDetail, error) {
	items, err := s.otherItemRepo.FindByDriverAndPeriod(ctx, driverID, periodID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	total := decimal.Zero
	var details []*payroll.PayrollDetail
	for i := range items {
		item := &items[i]
		amount := item.NormalizedAmount()
		total = total.Add(amount)
		details = append(details, payroll.NewPayrollDetail(
			payroll.DetailOtherItem,
			fmt.Sprintf("%s: %s", item.Type.DisplayName(), item.Description),
			amount,
		).WithOtherItem(item.ID))
	}
	return total, details, nil
}

func (s *CalculationService) persist(ctx context.Context, summary *payroll.PayrollSummary, details []*payroll.PayrollDetail, replace bool) error {
	for _, d := range details {
		d.SummaryID = summary.ID
	}
	if replace {
		return s.summaryRepo.ReplaceWithDetails(ctx, summary, details)
	}
	return s.summaryRepo.CreateWithDetails(ctx, summary, details)
}
