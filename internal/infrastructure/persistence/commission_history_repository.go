package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCommissionHistoryRepository implements CommissionHistoryRepository using GORM
type GormCommissionHistoryRepository struct {
	db *gorm.DB
}

// NewGormCommissionHistoryRepository creates a new GormCommissionHistoryRepository
func NewGormCommissionHistoryRepository(db *gorm.DB) *GormCommissionHistoryRepository {
	return &GormCommissionHistoryRepository{db: db}
}

// FindByID finds an entry by its ID
func (r *GormCommissionHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.CommissionHistoryEntry, error) {
	var model models.CommissionHistoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByDriver returns the driver's entry with no end date
func (r *GormCommissionHistoryRepository) FindOpenByDriver(ctx context.Context, driverID uuid.UUID) (*payroll.CommissionHistoryEntry, error) {
	var model models.CommissionHistoryModel
	if err := r.db.WithContext(ctx).
		Where("driver_id = ? AND effective_until IS NULL", driverID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAt returns the entry whose validity interval contains date
func (r *GormCommissionHistoryRepository) FindAt(ctx context.Context, driverID uuid.UUID, date time.Time) (*payroll.CommissionHistoryEntry, error) {
	var model models.CommissionHistoryModel
	if err := r.db.WithContext(ctx).
		Where("driver_id = ? AND effective_from <= ? AND (effective_until IS NULL OR effective_until >= ?)",
			driverID, date, date).
		Order("effective_from DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByDriver returns the driver's full history, newest first
func (r *GormCommissionHistoryRepository) FindAllByDriver(ctx context.Context, driverID uuid.UUID) ([]payroll.CommissionHistoryEntry, error) {
	var list []models.CommissionHistoryModel
	if err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("effective_from DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	entries := make([]payroll.CommissionHistoryEntry, len(list))
	for i := range list {
		entries[i] = *list[i].ToDomain()
	}
	return entries, nil
}

// Save creates or updates an entry
func (r *GormCommissionHistoryRepository) Save(ctx context.Context, entry *payroll.CommissionHistoryEntry) error {
	var model models.CommissionHistoryModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormCommissionHistoryRepository implements CommissionHistoryRepository
var _ payroll.CommissionHistoryRepository = (*GormCommissionHistoryRepository)(nil)
