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

// GormTripRepository implements TripRepository using GORM
type GormTripRepository struct {
	db *gorm.DB
}

// NewGormTripRepository creates a new GormTripRepository
func NewGormTripRepository(db *gorm.DB) *GormTripRepository {
	return &GormTripRepository{db: db}
}

// FindByID finds a trip by its ID
func (r *GormTripRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Trip, error) {
	var model models.TripModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds trips matching the filter with a total count
func (r *GormTripRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Trip, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TripModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("document_number ILIKE ? OR origin ILIKE ? OR destination ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.TripModel
	if err := applyFilter(query, filter, "start_date DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return tripsToDomain(list), total, nil
}

// FindFinishedStartingBetween returns the driver's finished trips whose
// start date falls inside [from, to].
func (r *GormTripRepository) FindFinishedStartingBetween(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]fleet.Trip, error) {
	var list []models.TripModel
	if err := r.db.WithContext(ctx).
		Where("driver_id = ? AND state = ? AND start_date >= ? AND start_date <= ?",
			driverID, fleet.TripStateFinished, from, to).
		Order("start_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return tripsToDomain(list), nil
}

// CountUnfinishedStartingBetween counts pending and in-progress trips
// starting inside [from, to]. A nil driverID counts across all drivers.
func (r *GormTripRepository) CountUnfinishedStartingBetween(ctx context.Context, driverID *uuid.UUID, from, to time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TripModel{}).
		Where("state IN ? AND start_date >= ? AND start_date <= ?",
			[]fleet.TripState{fleet.TripStatePending, fleet.TripStateInProgress}, from, to)
	if driverID != nil {
		query = query.Where("driver_id = ?", *driverID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a trip
func (r *GormTripRepository) Save(ctx context.Context, trip *fleet.Trip) error {
	var model models.TripModel
	model.FromDomain(trip)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a trip
func (r *GormTripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TripModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func tripsToDomain(list []models.TripModel) []fleet.Trip {
	trips := make([]fleet.Trip, len(list))
	for i := range list {
		trips[i] = *list[i].ToDomain()
	}
	return trips
}

// Ensure GormTripRepository implements TripRepository
var _ fleet.TripRepository = (*GormTripRepository)(nil)
