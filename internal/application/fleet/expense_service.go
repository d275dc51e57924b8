package fleet

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseInput carries the editable expense fields
type ExpenseInput struct {
	DriverID    uuid.UUID
	TripID      *uuid.UUID
	Type        fleet.ExpenseType
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	PaidByAdmin bool
	ReceiptURL  string
}

// ExpenseService manages driver expenses
type ExpenseService struct {
	expenseRepo fleet.ExpenseRepository
	driverRepo  fleet.DriverRepository
	tripRepo    fleet.TripRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo fleet.ExpenseRepository, driverRepo fleet.DriverRepository, tripRepo fleet.TripRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		driverRepo:  driverRepo,
		tripRepo:    tripRepo,
	}
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, input ExpenseInput) (*fleet.Expense, error) {
	if _, err := s.driverRepo.FindByID(ctx, input.DriverID); err != nil {
		return nil, err
	}
	if input.TripID != nil {
		if _, err := s.tripRepo.FindByID(ctx, *input.TripID); err != nil {
			return nil, err
		}
	}
	expense, err := fleet.NewExpense(input.DriverID, input.Type, input.Date, input.Amount)
	if err != nil {
		return nil, err
	}
	expense.TripID = input.TripID
	expense.Description = input.Description
	expense.PaidByAdmin = input.PaidByAdmin
	expense.ReceiptURL = input.ReceiptURL
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Update modifies an existing expense
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, input ExpenseInput) (*fleet.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_TYPE", "Expense type is not valid")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	expense.TripID = input.TripID
	expense.Type = input.Type
	expense.Date = input.Date
	expense.Amount = input.Amount
	expense.Description = input.Description
	expense.PaidByAdmin = input.PaidByAdmin
	expense.ReceiptURL = input.ReceiptURL
	expense.Touch()
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetByID returns an expense by its identifier
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*fleet.Expense, error) {
	return s.expenseRepo.FindByID(ctx, id)
}

// List returns expenses matching the filter
func (s *ExpenseService) List(ctx context.Context, filter shared.Filter) ([]fleet.Expense, int64, error) {
	return s.expenseRepo.FindAll(ctx, filter)
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}
