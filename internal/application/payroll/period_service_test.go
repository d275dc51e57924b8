package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetOrCreate_ReturnsExistingPeriod(t *testing.T) {
	periodRepo := new(MockPeriodRepository)
	tripRepo := new(MockTripRepository)
	service := NewPeriodService(periodRepo, tripRepo)

	existing, err := payroll.NewPayrollPeriod(2026, 3)
	assert.NoError(t, err)
	periodRepo.On("FindByYearMonth", mock.Anything, 2026, 3).Return(existing, nil)

	period, err := service.GetOrCreate(context.Background(), 2026, 3)

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, period.ID)
	periodRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetOrCreate_CreatesWithCalendarBounds(t *testing.T) {
	periodRepo := new(MockPeriodRepository)
	tripRepo := new(MockTripRepository)
	service := NewPeriodService(periodRepo, tripRepo)

	periodRepo.On("FindByYearMonth", mock.Anything, 2026, 2).Return(nil, shared.ErrNotFound)
	periodRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	period, err := service.GetOrCreate(context.Background(), 2026, 2)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), period.StartDate)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), period.EndDate)
}

func TestGetOrCreate_ConcurrentCreateResolvedByReread(t *testing.T) {
	periodRepo := new(MockPeriodRepository)
	tripRepo := new(MockTripRepository)
	service := NewPeriodService(periodRepo, tripRepo)

	winner, err := payroll.NewPayrollPeriod(2026, 3)
	assert.NoError(t, err)

	periodRepo.On("FindByYearMonth", mock.Anything, 2026, 3).Return(nil, shared.ErrNotFound).Once()
	periodRepo.On("Save", mock.Anything, mock.Anything).Return(shared.ErrConcurrencyConflict)
	periodRepo.On("FindByYearMonth", mock.Anything, 2026, 3).Return(winner, nil).Once()

	period, err := service.GetOrCreate(context.Background(), 2026, 3)

	assert.NoError(t, err)
	assert.Equal(t, winner.ID, period.ID)
}

func TestGetOrCreate_InvalidMonth(t *testing.T) {
	periodRepo := new(MockPeriodRepository)
	service := NewPeriodService(periodRepo, new(MockTripRepository))

	periodRepo.On("FindByYearMonth", mock.Anything, 2026, 13).Return(nil, shared.ErrNotFound)

	_, err := service.GetOrCreate(context.Background(), 2026, 13)
	assert.Error(t, err)
	periodRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetOrCreate_UnexpectedErrorPropagated(t *testing.T) {
	periodRepo := new(MockPeriodRepository)
	service := NewPeriodService(periodRepo, new(MockTripRepository))

	periodRepo.On("FindByYearMonth", mock.Anything, 2026, 3).Return(nil, errors.New("connection reset"))

	_, err := service.GetOrCreate(context.Background(), 2026, 3)
	assert.Error(t, err)
}

func TestRefreshTripsInProgress(t *testing.T) {
	periodRepo := new(MockPeriodRepository)
	tripRepo := new(MockTripRepository)
	service := NewPeriodService(periodRepo, tripRepo)

	period, err := payroll.NewPayrollPeriod(2026, 3)
	assert.NoError(t, err)

	periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
	tripRepo.On("CountUnfinishedStartingBetween", mock.Anything, (*uuid.UUID)(nil), period.StartDate, period.EndDate).Return(int64(2), nil)
	periodRepo.On("Save", mock.Anything, period).Return(nil)

	refreshed, err := service.RefreshTripsInProgress(context.Background(), period.ID)

	assert.NoError(t, err)
	assert.True(t, refreshed.HasTripsInProgress)
}
