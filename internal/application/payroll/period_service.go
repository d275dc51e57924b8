package payroll

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PeriodService manages payroll periods
type PeriodService struct {
	periodRepo payroll.PeriodRepository
	tripRepo   fleet.TripRepository
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(periodRepo payroll.PeriodRepository, tripRepo fleet.TripRepository) *PeriodService {
	return &PeriodService{
		periodRepo: periodRepo,
		tripRepo:   tripRepo,
	}
}

// GetOrCreate returns the period for (year, month), creating it with
// calendar-month bounds when it does not exist yet. A concurrent create
// for the same month is resolved by re-reading.
func (s *PeriodService) GetOrCreate(ctx context.Context, year, month int) (*payroll.PayrollPeriod, error) {
	period, err := s.periodRepo.FindByYearMonth(ctx, year, month)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	period, err = payroll.NewPayrollPeriod(year, month)
	if err != nil {
		return nil, err
	}
	if err := s.periodRepo.Save(ctx, period); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) || errors.Is(err, shared.ErrAlreadyExists) {
			return s.periodRepo.FindByYearMonth(ctx, year, month)
		}
		return nil, err
	}
	return period, nil
}

// GetByID returns a period by its identifier
func (s *PeriodService) GetByID(ctx context.Context, id uuid.UUID) (*payroll.PayrollPeriod, error) {
	return s.periodRepo.FindByID(ctx, id)
}

// List returns periods, newest first
func (s *PeriodService) List(ctx context.Context, page, pageSize int) ([]payroll.PayrollPeriod, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.periodRepo.FindAll(ctx, page, pageSize)
}

// RefreshTripsInProgress recomputes the period's informational flag from
// the current trip states.
func (s *PeriodService) RefreshTripsInProgress(ctx context.Context, periodID uuid.UUID) (*payroll.PayrollPeriod, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	count, err := s.tripRepo.CountUnfinishedStartingBetween(ctx, nil, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	period.SetTripsInProgress(count > 0)
	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}
