package payroll

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OtherItemService manages manual settlement entries
type OtherItemService struct {
	itemRepo    payroll.OtherItemRepository
	periodRepo  payroll.PeriodRepository
	summaryRepo payroll.SummaryRepository
	driverRepo  fleet.DriverRepository
}

// NewOtherItemService creates a new OtherItemService
func NewOtherItemService(
	itemRepo payroll.OtherItemRepository,
	periodRepo payroll.PeriodRepository,
	summaryRepo payroll.SummaryRepository,
	driverRepo fleet.DriverRepository,
) *OtherItemService {
	return &OtherItemService{
		itemRepo:    itemRepo,
		periodRepo:  periodRepo,
		summaryRepo: summaryRepo,
		driverRepo:  driverRepo,
	}
}

// Create records a new item. Items cannot be added once the driver's
// summary for the period has been approved.
func (s *OtherItemService) Create(ctx context.Context, driverID, periodID uuid.UUID, itemType payroll.OtherItemType, amount decimal.Decimal, description string, date time.Time, createdBy *uuid.UUID) (*payroll.OtherItem, error) {
	if _, err := s.driverRepo.FindByID(ctx, driverID); err != nil {
		return nil, err
	}
	if _, err := s.periodRepo.FindByID(ctx, periodID); err != nil {
		return nil, err
	}
	if err := s.ensureNotApproved(ctx, periodID, driverID); err != nil {
		return nil, err
	}

	item, err := payroll.NewOtherItem(driverID, periodID, itemType, amount, description, date)
	if err != nil {
		return nil, err
	}
	item.CreatedBy = createdBy
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update modifies an existing item's amount and description
func (s *OtherItemService) Update(ctx context.Context, id uuid.UUID, amount decimal.Decimal, description string) (*payroll.OtherItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotApproved(ctx, item.PeriodID, item.DriverID); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Item amount cannot be zero")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description is required")
	}
	item.Amount = amount
	item.Description = description
	item.Touch()
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item
func (s *OtherItemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureNotApproved(ctx, item.PeriodID, item.DriverID); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

// GetByID returns an item by its identifier
func (s *OtherItemService) GetByID(ctx context.Context, id uuid.UUID) (*payroll.OtherItem, error) {
	return s.itemRepo.FindByID(ctx, id)
}

// ListByDriverAndPeriod returns the driver's items for the period
func (s *OtherItemService) ListByDriverAndPeriod(ctx context.Context, driverID, periodID uuid.UUID) ([]payroll.OtherItem, error) {
	return s.itemRepo.FindByDriverAndPeriod(ctx, driverID, periodID)
}

func (s *OtherItemService) ensureNotApproved(ctx context.Context, periodID, driverID uuid.UUID) error {
	summary, err := s.summaryRepo.FindByPeriodAndDriver(ctx, periodID, driverID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil
		}
		return err
	}
	if summary.IsApproved() {
		return shared.NewDomainError("INVALID_STATE", "Summary for this period is already approved")
	}
	return nil
}
