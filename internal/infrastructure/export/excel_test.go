package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// MockSummaryRepository is a mock implementation of payroll.SummaryRepository
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.PayrollSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.PayrollSummary), args.Error(1)
}

func (m *MockSummaryRepository) FindByPeriodAndDriver(ctx context.Context, periodID, driverID uuid.UUID) (*payroll.PayrollSummary, error) {
	args := m.Called(ctx, periodID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.PayrollSummary), args.Error(1)
}

func (m *MockSummaryRepository) FindAll(ctx context.Context, filter payroll.SummaryFilter) ([]payroll.PayrollSummary, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payroll.PayrollSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockSummaryRepository) FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]payroll.PayrollSummary, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).([]payroll.PayrollSummary), args.Error(1)
}

func (m *MockSummaryRepository) FindDetails(ctx context.Context, summaryID uuid.UUID) ([]payroll.PayrollDetail, error) {
	args := m.Called(ctx, summaryID)
	return args.Get(0).([]payroll.PayrollDetail), args.Error(1)
}

func (m *MockSummaryRepository) CreateWithDetails(ctx context.Context, summary *payroll.PayrollSummary, details []*payroll.PayrollDetail) error {
	args := m.Called(ctx, summary, details)
	return args.Error(0)
}

func (m *MockSummaryRepository) ReplaceWithDetails(ctx context.Context, summary *payroll.PayrollSummary, details []*payroll.PayrollDetail) error {
	args := m.Called(ctx, summary, details)
	return args.Error(0)
}

func (m *MockSummaryRepository) Save(ctx context.Context, summary *payroll.PayrollSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSummaryRepository) CountByPeriodNotInStatus(ctx context.Context, periodID uuid.UUID, status payroll.SummaryStatus) (int64, error) {
	args := m.Called(ctx, periodID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockPeriodRepository is a mock implementation of payroll.PeriodRepository
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.PayrollPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.PayrollPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindByYearMonth(ctx context.Context, year, month int) (*payroll.PayrollPeriod, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.PayrollPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindAll(ctx context.Context, page, pageSize int) ([]payroll.PayrollPeriod, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]payroll.PayrollPeriod), args.Get(1).(int64), args.Error(2)
}

func (m *MockPeriodRepository) Save(ctx context.Context, period *payroll.PayrollPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// MockDriverRepository is a mock implementation of fleet.DriverRepository
type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]fleet.Driver, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindActive(ctx context.Context) ([]fleet.Driver, error) {
	args := m.Called(ctx)
	return args.Get(0).([]fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Driver, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]fleet.Driver), args.Get(1).(int64), args.Error(2)
}

func (m *MockDriverRepository) Save(ctx context.Context, driver *fleet.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type exportFixture struct {
	summaryRepo *MockSummaryRepository
	periodRepo  *MockPeriodRepository
	driverRepo  *MockDriverRepository
	exporter    *ExcelExporter
}

func newExportFixture() *exportFixture {
	f := &exportFixture{
		summaryRepo: new(MockSummaryRepository),
		periodRepo:  new(MockPeriodRepository),
		driverRepo:  new(MockDriverRepository),
	}
	f.exporter = NewExcelExporter(f.summaryRepo, f.periodRepo, f.driverRepo)
	return f
}

func TestExportPeriod_RefusesUnapprovedSummaries(t *testing.T) {
	f := newExportFixture()
	period, err := payroll.NewPayrollPeriod(2026, 3)
	require.NoError(t, err)

	f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
	f.summaryRepo.On("CountByPeriodNotInStatus", mock.Anything, period.ID, payroll.StatusApproved).
		Return(int64(2), nil)

	_, _, err = f.exporter.ExportPeriod(context.Background(), period.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unapproved")
	f.summaryRepo.AssertNotCalled(t, "FindByPeriod", mock.Anything, mock.Anything)
}

func TestExportPeriod_WritesOverviewAndDetailSheets(t *testing.T) {
	f := newExportFixture()
	period, err := payroll.NewPayrollPeriod(2026, 3)
	require.NoError(t, err)

	driver, err := fleet.NewDriver("Juan", "Perez", "juan@example.com", "30111222", "20-30111222-5",
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	summary := payroll.NewPayrollSummary(period.ID, driver.ID,
		valueobject.MustFraction(decimal.NewFromFloat(0.15)), decimal.NewFromInt(4000), false)
	summary.CommissionFromTrips = decimal.NewFromInt(3000)
	summary.TotalAmount = decimal.NewFromInt(3000)

	detail := payroll.NewPayrollDetail(payroll.DetailTripCommission,
		"Trip TR-001 Rosario - Cordoba", decimal.NewFromInt(3000))
	detail.SummaryID = summary.ID

	f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
	f.summaryRepo.On("CountByPeriodNotInStatus", mock.Anything, period.ID, payroll.StatusApproved).
		Return(int64(0), nil)
	f.summaryRepo.On("FindByPeriod", mock.Anything, period.ID).
		Return([]payroll.PayrollSummary{*summary}, nil)
	f.driverRepo.On("FindByIDs", mock.Anything, []uuid.UUID{driver.ID}).
		Return([]fleet.Driver{*driver}, nil)
	f.summaryRepo.On("FindDetails", mock.Anything, summary.ID).
		Return([]payroll.PayrollDetail{*detail}, nil)

	filename, content, err := f.exporter.ExportPeriod(context.Background(), period.ID)

	require.NoError(t, err)
	assert.Equal(t, "payroll_2026-03.xlsx", filename)
	require.NotEmpty(t, content)

	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer workbook.Close()

	assert.Contains(t, workbook.GetSheetList(), "Summary 2026-03")
	assert.Contains(t, workbook.GetSheetList(), "Juan Perez")

	name, err := workbook.GetCellValue("Summary 2026-03", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Juan Perez", name)

	concept, err := workbook.GetCellValue("Juan Perez", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Trip commission", concept)
}

func TestExportPeriod_HomonymousDriversGetSeparateSheets(t *testing.T) {
	f := newExportFixture()
	period, err := payroll.NewPayrollPeriod(2026, 3)
	require.NoError(t, err)

	enrollment := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	first, err := fleet.NewDriver("Juan", "Perez", "juan1@example.com", "30111222", "20-30111222-5", enrollment)
	require.NoError(t, err)
	second, err := fleet.NewDriver("Juan", "Perez", "juan2@example.com", "30333444", "20-30333444-1", enrollment)
	require.NoError(t, err)

	summaries := make([]payroll.PayrollSummary, 0, 2)
	for i, driver := range []*fleet.Driver{first, second} {
		s := payroll.NewPayrollSummary(period.ID, driver.ID,
			valueobject.MustFraction(decimal.NewFromFloat(0.15)), decimal.Zero, false)
		s.TotalAmount = decimal.NewFromInt(int64(1000 * (i + 1)))
		summaries = append(summaries, *s)

		detail := payroll.NewPayrollDetail(payroll.DetailTripCommission,
			"Trip "+driver.DNI, s.TotalAmount)
		detail.SummaryID = s.ID
		f.summaryRepo.On("FindDetails", mock.Anything, s.ID).
			Return([]payroll.PayrollDetail{*detail}, nil)
	}

	f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
	f.summaryRepo.On("CountByPeriodNotInStatus", mock.Anything, period.ID, payroll.StatusApproved).
		Return(int64(0), nil)
	f.summaryRepo.On("FindByPeriod", mock.Anything, period.ID).Return(summaries, nil)
	f.driverRepo.On("FindByIDs", mock.Anything, []uuid.UUID{first.ID, second.ID}).
		Return([]fleet.Driver{*first, *second}, nil)

	_, content, err := f.exporter.ExportPeriod(context.Background(), period.ID)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer workbook.Close()

	assert.Contains(t, workbook.GetSheetList(), "Juan Perez")
	assert.Contains(t, workbook.GetSheetList(), "Juan Perez (2)")

	firstDesc, err := workbook.GetCellValue("Juan Perez", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Trip "+first.DNI, firstDesc)

	secondDesc, err := workbook.GetCellValue("Juan Perez (2)", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Trip "+second.DNI, secondDesc)
}
