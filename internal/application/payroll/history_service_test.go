package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type historyFixture struct {
	commissionRepo *MockCommissionHistoryRepository
	minimumRepo    *MockMinimumGuaranteedRepository
	driverRepo     *MockDriverRepository
	service        *HistoryService
}

func newHistoryFixture() *historyFixture {
	f := &historyFixture{
		commissionRepo: new(MockCommissionHistoryRepository),
		minimumRepo:    new(MockMinimumGuaranteedRepository),
		driverRepo:     new(MockDriverRepository),
	}
	f.service = NewHistoryService(f.commissionRepo, f.minimumRepo, f.driverRepo, RateDefaults{
		Commission:        valueobject.MustFraction(decimal.NewFromFloat(0.10)),
		MinimumGuaranteed: decimal.NewFromInt(4000),
	})
	return f
}

func TestSetCommission_FirstEntryOpensUnbounded(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	f.driverRepo.On("FindByID", mock.Anything, driver.ID).Return(driver, nil)
	f.commissionRepo.On("FindOpenByDriver", mock.Anything, driver.ID).Return(nil, shared.ErrNotFound)
	f.commissionRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	entry, err := f.service.SetCommission(context.Background(), driver.ID, valueobject.MustFraction(decimal.NewFromFloat(0.15)), from)

	assert.NoError(t, err)
	assert.Equal(t, from, entry.EffectiveFrom)
	assert.Nil(t, entry.EffectiveUntil)
	f.commissionRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestSetCommission_ClosesOpenEntryDayBefore(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)

	open := payroll.NewCommissionHistoryEntry(driver.ID, valueobject.MustFraction(decimal.NewFromFloat(0.10)), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	newFrom := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	f.driverRepo.On("FindByID", mock.Anything, driver.ID).Return(driver, nil)
	f.commissionRepo.On("FindOpenByDriver", mock.Anything, driver.ID).Return(open, nil)
	f.commissionRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	entry, err := f.service.SetCommission(context.Background(), driver.ID, valueobject.MustFraction(decimal.NewFromFloat(0.18)), newFrom)

	assert.NoError(t, err)
	assert.NotNil(t, open.EffectiveUntil)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), *open.EffectiveUntil)
	assert.Equal(t, newFrom, entry.EffectiveFrom)
	assert.Nil(t, entry.EffectiveUntil)
	f.commissionRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestSetCommission_RejectsBackdatedStart(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)

	open := payroll.NewCommissionHistoryEntry(driver.ID, valueobject.MustFraction(decimal.NewFromFloat(0.10)), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	f.driverRepo.On("FindByID", mock.Anything, driver.ID).Return(driver, nil)
	f.commissionRepo.On("FindOpenByDriver", mock.Anything, driver.ID).Return(open, nil)

	for _, from := range []time.Time{
		time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), // same day as the open entry
	} {
		_, err := f.service.SetCommission(context.Background(), driver.ID, valueobject.MustFraction(decimal.NewFromFloat(0.2)), from)
		assert.Error(t, err)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_EFFECTIVE_DATE", domainErr.Code)
	}
	assert.Nil(t, open.EffectiveUntil)
	f.commissionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSetMinimumGuaranteed_RejectsNegative(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)

	_, err := f.service.SetMinimumGuaranteed(context.Background(), driver.ID, decimal.NewFromInt(-100), time.Now())
	assert.Error(t, err)
	f.driverRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSetMinimumGuaranteed_ClosesOpenEntry(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)

	open := payroll.NewMinimumGuaranteedEntry(driver.ID, decimal.NewFromInt(4000), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	newFrom := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	f.driverRepo.On("FindByID", mock.Anything, driver.ID).Return(driver, nil)
	f.minimumRepo.On("FindOpenByDriver", mock.Anything, driver.ID).Return(open, nil)
	f.minimumRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	entry, err := f.service.SetMinimumGuaranteed(context.Background(), driver.ID, decimal.NewFromInt(5500), newFrom)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *open.EffectiveUntil)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(5500)))
}

func TestCommissionAt_FallsBackToDefault(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)
	date := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	f.commissionRepo.On("FindAt", mock.Anything, driver.ID, date).Return(nil, shared.ErrNotFound)

	fraction, err := f.service.CommissionAt(context.Background(), driver.ID, date)

	assert.NoError(t, err)
	assert.True(t, fraction.Value().Equal(decimal.NewFromFloat(0.10)))
}

func TestCommissionAt_UsesCoveringEntry(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)
	date := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	entry := payroll.NewCommissionHistoryEntry(driver.ID, valueobject.MustFraction(decimal.NewFromFloat(0.22)), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	f.commissionRepo.On("FindAt", mock.Anything, driver.ID, date).Return(entry, nil)

	fraction, err := f.service.CommissionAt(context.Background(), driver.ID, date)

	assert.NoError(t, err)
	assert.True(t, fraction.Value().Equal(decimal.NewFromFloat(0.22)))
}

func TestCommissionAt_TruncatesToDay(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)

	f.commissionRepo.On("FindAt", mock.Anything, driver.ID, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)).Return(nil, shared.ErrNotFound)

	_, err := f.service.CommissionAt(context.Background(), driver.ID, time.Date(2026, 3, 31, 17, 45, 3, 0, time.UTC))

	assert.NoError(t, err)
	f.commissionRepo.AssertExpectations(t)
}

func TestMinimumGuaranteedAt_FallsBackToDefault(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)
	date := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	f.minimumRepo.On("FindAt", mock.Anything, driver.ID, date).Return(nil, shared.ErrNotFound)

	amount, err := f.service.MinimumGuaranteedAt(context.Background(), driver.ID, date)

	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(4000)))
}

func TestMinimumGuaranteedAt_PropagatesRepositoryError(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)
	date := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	f.minimumRepo.On("FindAt", mock.Anything, driver.ID, date).Return(nil, errors.New("connection reset"))

	_, err := f.service.MinimumGuaranteedAt(context.Background(), driver.ID, date)
	assert.Error(t, err)
}

func TestUpdateCommissionValue_KeepsDates(t *testing.T) {
	f := newHistoryFixture()
	driver := testDriver(t)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := payroll.NewCommissionHistoryEntry(driver.ID, valueobject.MustFraction(decimal.NewFromFloat(0.10)), from)

	f.commissionRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	f.commissionRepo.On("Save", mock.Anything, entry).Return(nil)

	updated, err := f.service.UpdateCommissionValue(context.Background(), entry.ID, valueobject.MustFraction(decimal.NewFromFloat(0.12)))

	assert.NoError(t, err)
	assert.True(t, updated.Percentage.Value().Equal(decimal.NewFromFloat(0.12)))
	assert.Equal(t, from, updated.EffectiveFrom)
	assert.Nil(t, updated.EffectiveUntil)
}

func TestUpdateMinimumGuaranteedValue_RejectsNegative(t *testing.T) {
	f := newHistoryFixture()

	_, err := f.service.UpdateMinimumGuaranteedValue(context.Background(), testDriver(t).ID, decimal.NewFromInt(-1))
	assert.Error(t, err)
	f.minimumRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
