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

// GormDriverRepository implements DriverRepository using GORM
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GormDriverRepository
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// FindByID finds a driver by its ID
func (r *GormDriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Driver, error) {
	var model models.DriverModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple drivers by their IDs
func (r *GormDriverRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]fleet.Driver, error) {
	if len(ids) == 0 {
		return []fleet.Driver{}, nil
	}
	var list []models.DriverModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	return driversToDomain(list), nil
}

// FindActive finds all active drivers ordered by name
func (r *GormDriverRepository) FindActive(ctx context.Context) ([]fleet.Driver, error) {
	var list []models.DriverModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("last_name ASC, first_name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return driversToDomain(list), nil
}

// FindAll finds drivers matching the filter with a total count
func (r *GormDriverRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Driver, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DriverModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR dni ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.DriverModel
	if err := applyFilter(query, filter, "last_name ASC, first_name ASC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return driversToDomain(list), total, nil
}

// Save creates or updates a driver
func (r *GormDriverRepository) Save(ctx context.Context, driver *fleet.Driver) error {
	var model models.DriverModel
	model.FromDomain(driver)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a driver
func (r *GormDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DriverModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func driversToDomain(list []models.DriverModel) []fleet.Driver {
	drivers := make([]fleet.Driver, len(list))
	for i := range list {
		drivers[i] = *list[i].ToDomain()
	}
	return drivers
}

// Ensure GormDriverRepository implements DriverRepository
var _ fleet.DriverRepository = (*GormDriverRepository)(nil)
