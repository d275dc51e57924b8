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

// GormAdvancePaymentRepository implements AdvancePaymentRepository using GORM
type GormAdvancePaymentRepository struct {
	db *gorm.DB
}

// NewGormAdvancePaymentRepository creates a new GormAdvancePaymentRepository
func NewGormAdvancePaymentRepository(db *gorm.DB) *GormAdvancePaymentRepository {
	return &GormAdvancePaymentRepository{db: db}
}

// FindByID finds an advance payment by its ID
func (r *GormAdvancePaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.AdvancePayment, error) {
	var model models.AdvancePaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds advance payments matching the filter with a total count
func (r *GormAdvancePaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.AdvancePayment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AdvancePaymentModel{})
	if filter.Search != "" {
		query = query.Where("notes ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.AdvancePaymentModel
	if err := applyFilter(query, filter, "date DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return advancesToDomain(list), total, nil
}

// FindByDriverBetween returns the driver's advances dated inside [from, to]
func (r *GormAdvancePaymentRepository) FindByDriverBetween(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]fleet.AdvancePayment, error) {
	var list []models.AdvancePaymentModel
	if err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date >= ? AND date <= ?", driverID, from, to).
		Order("date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return advancesToDomain(list), nil
}

// Save creates or updates an advance payment
func (r *GormAdvancePaymentRepository) Save(ctx context.Context, advance *fleet.AdvancePayment) error {
	var model models.AdvancePaymentModel
	model.FromDomain(advance)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes an advance payment
func (r *GormAdvancePaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AdvancePaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func advancesToDomain(list []models.AdvancePaymentModel) []fleet.AdvancePayment {
	advances := make([]fleet.AdvancePayment, len(list))
	for i := range list {
		advances[i] = *list[i].ToDomain()
	}
	return advances
}

// Ensure GormAdvancePaymentRepository implements AdvancePaymentRepository
var _ fleet.AdvancePaymentRepository = (*GormAdvancePaymentRepository)(nil)
