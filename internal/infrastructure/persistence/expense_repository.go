package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds expenses matching the filter with a total count
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.ExpenseModel
	if err := applyFilter(query, filter, "date DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return expensesToDomain(list), total, nil
}

// FindByDriverBetween returns the driver's expenses dated inside [from, to]
func (r *GormExpenseRepository) FindByDriverBetween(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]fleet.Expense, error) {
	var list []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date >= ? AND date <= ?", driverID, from, to).
		Order("date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return expensesToDomain(list), nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *fleet.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(expense)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func expensesToDomain(list []models.ExpenseModel) []fleet.Expense {
	expenses := make([]fleet.Expense, len(list))
	for i := range list {
		expenses[i] = *list[i].ToDomain()
	}
	return expenses
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ fleet.ExpenseRepository = (*GormExpenseRepository)(nil)
