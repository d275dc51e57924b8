package fleet

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvanceService manages cash advances handed to drivers
type AdvanceService struct {
	advanceRepo fleet.AdvancePaymentRepository
	driverRepo  fleet.DriverRepository
}

// NewAdvanceService creates a new AdvanceService
func NewAdvanceService(advanceRepo fleet.AdvancePaymentRepository, driverRepo fleet.DriverRepository) *AdvanceService {
	return &AdvanceService{
		advanceRepo: advanceRepo,
		driverRepo:  driverRepo,
	}
}

// Create records a new advance payment
func (s *AdvanceService) Create(ctx context.Context, driverID uuid.UUID, date time.Time, amount decimal.Decimal, notes string) (*fleet.AdvancePayment, error) {
	if _, err := s.driverRepo.FindByID(ctx, driverID); err != nil {
		return nil, err
	}
	advance, err := fleet.NewAdvancePayment(driverID, date, amount)
	if err != nil {
		return nil, err
	}
	advance.Notes = notes
	if err := s.advanceRepo.Save(ctx, advance); err != nil {
		return nil, err
	}
	return advance, nil
}

// Update modifies an existing advance payment
func (s *AdvanceService) Update(ctx context.Context, id uuid.UUID, date time.Time, amount decimal.Decimal, notes string) (*fleet.AdvancePayment, error) {
	advance, err := s.advanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Advance payment amount must be positive")
	}
	advance.Date = date
	advance.Amount = amount
	advance.Notes = notes
	advance.Touch()
	if err := s.advanceRepo.Save(ctx, advance); err != nil {
		return nil, err
	}
	return advance, nil
}

// GetByID returns an advance payment by its identifier
func (s *AdvanceService) GetByID(ctx context.Context, id uuid.UUID) (*fleet.AdvancePayment, error) {
	return s.advanceRepo.FindByID(ctx, id)
}

// List returns advance payments matching the filter
func (s *AdvanceService) List(ctx context.Context, filter shared.Filter) ([]fleet.AdvancePayment, int64, error) {
	return s.advanceRepo.FindAll(ctx, filter)
}

// Delete removes an advance payment
func (s *AdvanceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.advanceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.advanceRepo.Delete(ctx, id)
}
