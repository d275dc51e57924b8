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

// GormSummaryRepository implements SummaryRepository using GORM
type GormSummaryRepository struct {
	db *gorm.DB
}

// NewGormSummaryRepository creates a new GormSummaryRepository
func NewGormSummaryRepository(db *gorm.DB) *GormSummaryRepository {
	return &GormSummaryRepository{db: db}
}

// FindByID finds a summary by its ID
func (r *GormSummaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.PayrollSummary, error) {
	var model models.PayrollSummaryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriodAndDriver finds the summary for a (period, driver) pair
func (r *GormSummaryRepository) FindByPeriodAndDriver(ctx context.Context, periodID, driverID uuid.UUID) (*payroll.PayrollSummary, error) {
	var model models.PayrollSummaryModel
	if err := r.db.WithContext(ctx).
		First(&model, "period_id = ? AND driver_id = ?", periodID, driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds summaries matching the filter with a total count
func (r *GormSummaryRepository) FindAll(ctx context.Context, filter payroll.SummaryFilter) ([]payroll.PayrollSummary, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PayrollSummaryModel{})
	if filter.PeriodID != nil {
		query = query.Where("period_id = ?", *filter.PeriodID)
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var list []models.PayrollSummaryModel
	if err := query.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return summariesToDomain(list), total, nil
}

// FindByPeriod returns all summaries for a period
func (r *GormSummaryRepository) FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]payroll.PayrollSummary, error) {
	var list []models.PayrollSummaryModel
	if err := r.db.WithContext(ctx).
		Where("period_id = ?", periodID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return summariesToDomain(list), nil
}

// FindDetails returns a summary's detail lines in insertion order
func (r *GormSummaryRepository) FindDetails(ctx context.Context, summaryID uuid.UUID) ([]payroll.PayrollDetail, error) {
	var list []models.PayrollDetailModel
	if err := r.db.WithContext(ctx).
		Where("summary_id = ?", summaryID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	details := make([]payroll.PayrollDetail, len(list))
	for i := range list {
		details[i] = *list[i].ToDomain()
	}
	return details, nil
}

// CreateWithDetails inserts the summary and its detail rows in one
// transaction. The unique (period, driver) index turns a concurrent
// duplicate insert into shared.ErrConcurrencyConflict.
func (r *GormSummaryRepository) CreateWithDetails(ctx context.Context, summary *payroll.PayrollSummary, details []*payroll.PayrollDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.PayrollSummaryModel
		model.FromDomain(summary)
		if err := tx.Create(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrConcurrencyConflict
			}
			return err
		}
		return insertDetails(tx, details)
	})
}

// ReplaceWithDetails updates the summary and swaps all its detail rows
// in one transaction.
func (r *GormSummaryRepository) ReplaceWithDetails(ctx context.Context, summary *payroll.PayrollSummary, details []*payroll.PayrollDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.PayrollSummaryModel
		model.FromDomain(summary)
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.PayrollDetailModel{}, "summary_id = ?", summary.ID).Error; err != nil {
			return err
		}
		return insertDetails(tx, details)
	})
}

// Save updates a summary without touching its details
func (r *GormSummaryRepository) Save(ctx context.Context, summary *payroll.PayrollSummary) error {
	var model models.PayrollSummaryModel
	model.FromDomain(summary)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a summary and its details in one transaction
func (r *GormSummaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PayrollDetailModel{}, "summary_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.PayrollSummaryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByPeriodNotInStatus counts the period's summaries whose status
// differs from the given one
func (r *GormSummaryRepository) CountByPeriodNotInStatus(ctx context.Context, periodID uuid.UUID, status payroll.SummaryStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PayrollSummaryModel{}).
		Where("period_id = ? AND status <> ?", periodID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func insertDetails(tx *gorm.DB, details []*payroll.PayrollDetail) error {
	if len(details) == 0 {
		return nil
	}
	rows := make([]models.PayrollDetailModel, len(details))
	for i, d := range details {
		rows[i].FromDomain(d)
	}
	return tx.Create(&rows).Error
}

func summariesToDomain(list []models.PayrollSummaryModel) []payroll.PayrollSummary {
	summaries := make([]payroll.PayrollSummary, len(list))
	for i := range list {
		summaries[i] = *list[i].ToDomain()
	}
	return summaries
}

// Ensure GormSummaryRepository implements SummaryRepository
var _ payroll.SummaryRepository = (*GormSummaryRepository)(nil)
