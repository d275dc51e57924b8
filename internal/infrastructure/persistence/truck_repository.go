package persistence

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTruckRepository implements TruckRepository using GORM
type GormTruckRepository struct {
	db *gorm.DB
}

// NewGormTruckRepository creates a new GormTruckRepository
func NewGormTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

// FindByID finds a truck by its ID
func (r *GormTruckRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Truck, error) {
	var model models.TruckModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds trucks matching the filter with a total count
func (r *GormTruckRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Truck, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TruckModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("license_plate ILIKE ? OR brand ILIKE ? OR model ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.TruckModel
	if err := applyFilter(query, filter, "license_plate ASC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	trucks := make([]fleet.Truck, len(list))
	for i := range list {
		trucks[i] = *list[i].ToDomain()
	}
	return trucks, total, nil
}

// Save creates or updates a truck
func (r *GormTruckRepository) Save(ctx context.Context, truck *fleet.Truck) error {
	var model models.TruckModel
	model.FromDomain(truck)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a truck
func (r *GormTruckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TruckModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTruckRepository implements TruckRepository
var _ fleet.TruckRepository = (*GormTruckRepository)(nil)
