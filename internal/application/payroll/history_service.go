package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateDefaults supplies the fallback values used when a driver has no
// history entry covering the requested date. Loaded from configuration
// at wiring time.
type RateDefaults struct {
	Commission        valueobject.Fraction
	MinimumGuaranteed decimal.Decimal
}

// HistoryService manages the two per-driver temporal ledgers: commission
// fraction and guaranteed minimum. Setting a new value closes the open
// entry the day before the new one takes effect, so intervals never
// overlap and every date resolves to at most one entry.
type HistoryService struct {
	commissionRepo payroll.CommissionHistoryRepository
	minimumRepo    payroll.MinimumGuaranteedRepository
	driverRepo     fleet.DriverRepository
	defaults       RateDefaults
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(
	commissionRepo payroll.CommissionHistoryRepository,
	minimumRepo payroll.MinimumGuaranteedRepository,
	driverRepo fleet.DriverRepository,
	defaults RateDefaults,
) *HistoryService {
	return &HistoryService{
		commissionRepo: commissionRepo,
		minimumRepo:    minimumRepo,
		driverRepo:     driverRepo,
		defaults:       defaults,
	}
}

// SetCommission opens a new commission entry for the driver starting at
// effectiveFrom, closing the currently open entry at effectiveFrom minus
// one day.
func (s *HistoryService) SetCommission(ctx context.Context, driverID uuid.UUID, percentage valueobject.Fraction, effectiveFrom time.Time) (*payroll.CommissionHistoryEntry, error) {
	if _, err := s.driverRepo.FindByID(ctx, driverID); err != nil {
		return nil, err
	}
	effectiveFrom = truncateToDay(effectiveFrom)

	open, err := s.commissionRepo.FindOpenByDriver(ctx, driverID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if open != nil {
		if !effectiveFrom.After(open.EffectiveFrom) {
			return nil, shared.NewDomainError("INVALID_EFFECTIVE_DATE", "New entry must start after the current one")
		}
		if err := open.CloseAt(effectiveFrom.AddDate(0, 0, -1)); err != nil {
			return nil, err
		}
		if err := s.commissionRepo.Save(ctx, open); err != nil {
			return nil, err
		}
	}

	entry := payroll.NewCommissionHistoryEntry(driverID, percentage, effectiveFrom)
	if err := s.commissionRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// SetMinimumGuaranteed opens a new guaranteed-minimum entry for the driver,
// closing the currently open one the day before.
func (s *HistoryService) SetMinimumGuaranteed(ctx context.Context, driverID uuid.UUID, amount decimal.Decimal, effectiveFrom time.Time) (*payroll.MinimumGuaranteedEntry, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Guaranteed minimum cannot be negative")
	}
	if _, err := s.driverRepo.FindByID(ctx, driverID); err != nil {
		return nil, err
	}
	effectiveFrom = truncateToDay(effectiveFrom)

	open, err := s.minimumRepo.FindOpenByDriver(ctx, driverID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if open != nil {
		if !effectiveFrom.After(open.EffectiveFrom) {
			return nil, shared.NewDomainError("INVALID_EFFECTIVE_DATE", "New entry must start after the current one")
		}
		if err := open.CloseAt(effectiveFrom.AddDate(0, 0, -1)); err != nil {
			return nil, err
		}
		if err := s.minimumRepo.Save(ctx, open); err != nil {
			return nil, err
		}
	}

	entry := payroll.NewMinimumGuaranteedEntry(driverID, amount, effectiveFrom)
	if err := s.minimumRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// CommissionAt resolves the driver's commission fraction valid at date.
// Falls back to the configured default when no entry covers the date.
func (s *HistoryService) CommissionAt(ctx context.Context, driverID uuid.UUID, date time.Time) (valueobject.Fraction, error) {
	entry, err := s.commissionRepo.FindAt(ctx, driverID, truncateToDay(date))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.defaults.Commission, nil
		}
		return valueobject.ZeroFraction(), err
	}
	return entry.Percentage, nil
}

// MinimumGuaranteedAt resolves the driver's guaranteed minimum valid at
// date, falling back to the configured default.
func (s *HistoryService) MinimumGuaranteedAt(ctx context.Context, driverID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	entry, err := s.minimumRepo.FindAt(ctx, driverID, truncateToDay(date))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.defaults.MinimumGuaranteed, nil
		}
		return decimal.Zero, err
	}
	return entry.Amount, nil
}

// ListCommission returns the driver's full commission history, newest first
func (s *HistoryService) ListCommission(ctx context.Context, driverID uuid.UUID) ([]payroll.CommissionHistoryEntry, error) {
	return s.commissionRepo.FindAllByDriver(ctx, driverID)
}

// ListMinimumGuaranteed returns the driver's full minimum history, newest first
func (s *HistoryService) ListMinimumGuaranteed(ctx context.Context, driverID uuid.UUID) ([]payroll.MinimumGuaranteedEntry, error) {
	return s.minimumRepo.FindAllByDriver(ctx, driverID)
}

// UpdateCommissionValue changes the fraction of an existing entry. Validity
// dates cannot be edited: reshaping intervals would silently rewrite past
// settlements, so date changes require a new entry instead.
func (s *HistoryService) UpdateCommissionValue(ctx context.Context, entryID uuid.UUID, percentage valueobject.Fraction) (*payroll.CommissionHistoryEntry, error) {
	entry, err := s.commissionRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Percentage = percentage
	entry.Touch()
	if err := s.commissionRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateMinimumGuaranteedValue changes the amount of an existing entry.
// Validity dates cannot be edited.
func (s *HistoryService) UpdateMinimumGuaranteedValue(ctx context.Context, entryID uuid.UUID, amount decimal.Decimal) (*payroll.MinimumGuaranteedEntry, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Guaranteed minimum cannot be negative")
	}
	entry, err := s.minimumRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Amount = amount
	entry.Touch()
	if err := s.minimumRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
