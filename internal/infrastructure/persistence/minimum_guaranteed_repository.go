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

// GormMinimumGuaranteedRepository implements MinimumGuaranteedRepository using GORM
type GormMinimumGuaranteedRepository struct {
	db *gorm.DB
}

// NewGormMinimumGuaranteedRepository creates a new GormMinimumGuaranteedRepository
func NewGormMinimumGuaranteedRepository(db *gorm.DB) *GormMinimumGuaranteedRepository {
	return &GormMinimumGuaranteedRepository{db: db}
}

// FindByID finds an entry by its ID
func (r *GormMinimumGuaranteedRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.MinimumGuaranteedEntry, error) {
	var model models.MinimumGuaranteedModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByDriver returns the driver's entry with no end date
func (r *GormMinimumGuaranteedRepository) FindOpenByDriver(ctx context.Context, driverID uuid.UUID) (*payroll.MinimumGuaranteedEntry, error) {
	var model models.MinimumGuaranteedModel
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
func (r *GormMinimumGuaranteedRepository) FindAt(ctx context.Context, driverID uuid.UUID, date time.Time) (*payroll.MinimumGuaranteedEntry, error) {
	var model models.MinimumGuaranteedModel
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
func (r *GormMinimumGuaranteedRepository) FindAllByDriver(ctx context.Context, driverID uuid.UUID) ([]payroll.MinimumGuaranteedEntry, error) {
	var list []models.MinimumGuaranteedModel
	if err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("effective_from DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	entries := make([]payroll.MinimumGuaranteedEntry, len(list))
	for i := range list {
		entries[i] = *list[i].ToDomain()
	}
	return entries, nil
}

// Save creates or updates an entry
func (r *GormMinimumGuaranteedRepository) Save(ctx context.Context, entry *payroll.MinimumGuaranteedEntry) error {
	var model models.MinimumGuaranteedModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormMinimumGuaranteedRepository implements MinimumGuaranteedRepository
var _ payroll.MinimumGuaranteedRepository = (*GormMinimumGuaranteedRepository)(nil)
