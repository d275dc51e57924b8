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

// GormOtherItemRepository implements OtherItemRepository using GORM
type GormOtherItemRepository struct {
	db *gorm.DB
}

// NewGormOtherItemRepository creates a new GormOtherItemRepository
func NewGormOtherItemRepository(db *gorm.DB) *GormOtherItemRepository {
	return &GormOtherItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormOtherItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.OtherItem, error) {
	var model models.OtherItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDriverAndPeriod returns the driver's items for the period
func (r *GormOtherItemRepository) FindByDriverAndPeriod(ctx context.Context, driverID, periodID uuid.UUID) ([]payroll.OtherItem, error) {
	var list []models.OtherItemModel
	if err := r.db.WithContext(ctx).
		Where("driver_id = ? AND period_id = ?", driverID, periodID).
		Order("date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return otherItemsToDomain(list), nil
}

// FindByPeriod returns all items for the period
func (r *GormOtherItemRepository) FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]payroll.OtherItem, error) {
	var list []models.OtherItemModel
	if err := r.db.WithContext(ctx).
		Where("period_id = ?", periodID).
		Order("date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return otherItemsToDomain(list), nil
}

// Save creates or updates an item
func (r *GormOtherItemRepository) Save(ctx context.Context, item *payroll.OtherItem) error {
	var model models.OtherItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes an item
func (r *GormOtherItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OtherItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func otherItemsToDomain(list []models.OtherItemModel) []payroll.OtherItem {
	items := make([]payroll.OtherItem, len(list))
	for i := range list {
		items[i] = *list[i].ToDomain()
	}
	return items
}

// Ensure GormOtherItemRepository implements OtherItemRepository
var _ payroll.OtherItemRepository = (*GormOtherItemRepository)(nil)
