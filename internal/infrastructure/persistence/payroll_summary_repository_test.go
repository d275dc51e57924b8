package persistence

import (
	"context"
	"testing"

	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/fleet/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSummaryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PayrollSummaryModel{},
		&models.PayrollDetailModel{},
	)
	require.NoError(t, err)

	return db
}

func newStoredSummary() *payroll.PayrollSummary {
	return payroll.NewPayrollSummary(
		uuid.New(),
		uuid.New(),
		valueobject.MustFraction(decimal.NewFromFloat(0.15)),
		decimal.NewFromInt(4000),
		false,
	)
}

func TestSummaryRepository_CreateWithDetails(t *testing.T) {
	db := setupSummaryTestDB(t)
	repo := NewGormSummaryRepository(db)
	ctx := context.Background()

	summary := newStoredSummary()
	rate := decimal.NewFromInt(100)
	qty := decimal.NewFromInt(20)
	details := []*payroll.PayrollDetail{
		payroll.NewPayrollDetail(payroll.DetailTripCommission, "Trip TR-001 Rosario - Cordoba", decimal.NewFromInt(300)).
			WithTrip(uuid.New()).
			WithCalculation(payroll.CalculationData{Rate: &rate, BaseQuantity: &qty}),
		payroll.NewPayrollDetail(payroll.DetailExpenseReimburse, "Fuel", decimal.NewFromInt(500)).
			WithExpense(uuid.New()),
	}
	for _, d := range details {
		d.SummaryID = summary.ID
	}

	err := repo.CreateWithDetails(ctx, summary, details)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, summary.ID)
	require.NoError(t, err)
	assert.Equal(t, summary.PeriodID, found.PeriodID)
	assert.Equal(t, payroll.StatusDraft, found.Status)
	assert.True(t, found.CommissionPercentageUsed.Value().Equal(decimal.NewFromFloat(0.15)))
	assert.True(t, found.MinimumGuaranteedUsed.Equal(decimal.NewFromInt(4000)))

	byPair, err := repo.FindByPeriodAndDriver(ctx, summary.PeriodID, summary.DriverID)
	require.NoError(t, err)
	assert.Equal(t, summary.ID, byPair.ID)

	stored, err := repo.FindDetails(ctx, summary.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	byType := make(map[payroll.DetailType]payroll.PayrollDetail, len(stored))
	for _, d := range stored {
		byType[d.Type] = d
	}
	commission := byType[payroll.DetailTripCommission]
	require.NotNil(t, commission.Calculation)
	assert.True(t, commission.Calculation.Rate.Equal(rate))
	assert.True(t, commission.Calculation.BaseQuantity.Equal(qty))
	assert.NotNil(t, commission.TripID)
	assert.Nil(t, byType[payroll.DetailExpenseReimburse].Calculation)
}

func TestSummaryRepository_CreateWithDetails_DuplicatePeriodDriver(t *testing.T) {
	db := setupSummaryTestDB(t)
	repo := NewGormSummaryRepository(db)
	ctx := context.Background()

	first := newStoredSummary()
	require.NoError(t, repo.CreateWithDetails(ctx, first, nil))

	duplicate := payroll.NewPayrollSummary(first.PeriodID, first.DriverID,
		valueobject.ZeroFraction(), decimal.Zero, true)
	err := repo.CreateWithDetails(ctx, duplicate, nil)

	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestSummaryRepository_ReplaceWithDetails(t *testing.T) {
	db := setupSummaryTestDB(t)
	repo := NewGormSummaryRepository(db)
	ctx := context.Background()

	summary := newStoredSummary()
	stale := payroll.NewPayrollDetail(payroll.DetailTripCommission, "old line", decimal.NewFromInt(100))
	stale.SummaryID = summary.ID
	require.NoError(t, repo.CreateWithDetails(ctx, summary, []*payroll.PayrollDetail{stale}))

	summary.CommissionFromTrips = decimal.NewFromInt(3000)
	summary.TotalAmount = decimal.NewFromInt(3000)
	fresh := payroll.NewPayrollDetail(payroll.DetailTripCommission, "Trip TR-002 Rosario - Mendoza", decimal.NewFromInt(3000))
	fresh.SummaryID = summary.ID

	err := repo.ReplaceWithDetails(ctx, summary, []*payroll.PayrollDetail{fresh})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, summary.ID)
	require.NoError(t, err)
	assert.True(t, found.CommissionFromTrips.Equal(decimal.NewFromInt(3000)))

	details, err := repo.FindDetails(ctx, summary.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Trip TR-002 Rosario - Mendoza", details[0].Description)
}

func TestSummaryRepository_Delete(t *testing.T) {
	db := setupSummaryTestDB(t)
	repo := NewGormSummaryRepository(db)
	ctx := context.Background()

	summary := newStoredSummary()
	detail := payroll.NewPayrollDetail(payroll.DetailAdvance, "Advance 10/03", decimal.NewFromInt(-1000))
	detail.SummaryID = summary.ID
	require.NoError(t, repo.CreateWithDetails(ctx, summary, []*payroll.PayrollDetail{detail}))

	require.NoError(t, repo.Delete(ctx, summary.ID))

	_, err := repo.FindByID(ctx, summary.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	orphans, err := repo.FindDetails(ctx, summary.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestSummaryRepository_CountByPeriodNotInStatus(t *testing.T) {
	db := setupSummaryTestDB(t)
	repo := NewGormSummaryRepository(db)
	ctx := context.Background()

	periodID := uuid.New()
	for i := 0; i < 3; i++ {
		summary := payroll.NewPayrollSummary(periodID, uuid.New(),
			valueobject.ZeroFraction(), decimal.Zero, true)
		require.NoError(t, summary.Submit())
		if i == 0 {
			require.NoError(t, summary.Approve(""))
		}
		require.NoError(t, repo.CreateWithDetails(ctx, summary, nil))
	}

	pending, err := repo.CountByPeriodNotInStatus(ctx, periodID, payroll.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)

	other, err := repo.CountByPeriodNotInStatus(ctx, uuid.New(), payroll.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)
}

func TestSummaryRepository_FindAll_FiltersByStatus(t *testing.T) {
	db := setupSummaryTestDB(t)
	repo := NewGormSummaryRepository(db)
	ctx := context.Background()

	periodID := uuid.New()
	draft := payroll.NewPayrollSummary(periodID, uuid.New(), valueobject.ZeroFraction(), decimal.Zero, false)
	require.NoError(t, repo.CreateWithDetails(ctx, draft, nil))

	submitted := payroll.NewPayrollSummary(periodID, uuid.New(), valueobject.ZeroFraction(), decimal.Zero, false)
	require.NoError(t, submitted.Submit())
	require.NoError(t, repo.CreateWithDetails(ctx, submitted, nil))

	status := payroll.StatusPendingApproval
	list, total, err := repo.FindAll(ctx, payroll.SummaryFilter{PeriodID: &periodID, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, submitted.ID, list[0].ID)
}
