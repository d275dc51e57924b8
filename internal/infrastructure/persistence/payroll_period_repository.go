package persistence

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPeriodRepository implements PeriodRepository using GORM
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// FindByID finds a period by its ID
func (r *GormPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.PayrollPeriod, error) {
	var model models.PayrollPeriodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByYearMonth finds the period for a calendar month
func (r *GormPeriodRepository) FindByYearMonth(ctx context.Context, year, month int) (*payroll.PayrollPeriod, error) {
	var model models.PayrollPeriodModel
	if err := r.db.WithContext(ctx).First(&model, "year = ? AND month = ?", year, month).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns periods newest first with a total count
func (r *GormPeriodRepository) FindAll(ctx context.Context, page, pageSize int) ([]payroll.PayrollPeriod, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PayrollPeriodModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.PayrollPeriodModel
	query := r.db.WithContext(ctx).Order("year DESC, month DESC")
	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, 0, err
	}

	periods := make([]payroll.PayrollPeriod, len(list))
	for i := range list {
		periods[i] = *list[i].ToDomain()
	}
	return periods, total, nil
}

// Save creates or updates a period. A concurrent insert for the same
// month surfaces as shared.ErrConcurrencyConflict via the unique index.
func (r *GormPeriodRepository) Save(ctx context.Context, period *payroll.PayrollPeriod) error {
	var model models.PayrollPeriodModel
	model.FromDomain(period)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConcurrencyConflict
		}
		return err
	}
	return nil
}

// Ensure GormPeriodRepository implements PeriodRepository
var _ payroll.PeriodRepository = (*GormPeriodRepository)(nil)
