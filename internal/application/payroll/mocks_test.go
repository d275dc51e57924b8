package payroll

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

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

// MockCommissionHistoryRepository is a mock implementation of payroll.CommissionHistoryRepository
type MockCommissionHistoryRepository struct {
	mock.Mock
}

func (m *MockCommissionHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.CommissionHistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.CommissionHistoryEntry), args.Error(1)
}

func (m *MockCommissionHistoryRepository) FindOpenByDriver(ctx context.Context, driverID uuid.UUID) (*payroll.CommissionHistoryEntry, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.CommissionHistoryEntry), args.Error(1)
}

func (m *MockCommissionHistoryRepository) FindAt(ctx context.Context, driverID uuid.UUID, date time.Time) (*payroll.CommissionHistoryEntry, error) {
	args := m.Called(ctx, driverID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.CommissionHistoryEntry), args.Error(1)
}

func (m *MockCommissionHistoryRepository) FindAllByDriver(ctx context.Context, driverID uuid.UUID) ([]payroll.CommissionHistoryEntry, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).([]payroll.CommissionHistoryEntry), args.Error(1)
}

func (m *MockCommissionHistoryRepository) Save(ctx context.Context, entry *payroll.CommissionHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockMinimumGuaranteedRepository is a mock implementation of payroll.MinimumGuaranteedRepository
type MockMinimumGuaranteedRepository struct {
	mock.Mock
}

func (m *MockMinimumGuaranteedRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.MinimumGuaranteedEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.MinimumGuaranteedEntry), args.Error(1)
}

func (m *MockMinimumGuaranteedRepository) FindOpenByDriver(ctx context.Context, driverID uuid.UUID) (*payroll.MinimumGuaranteedEntry, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.MinimumGuaranteedEntry), args.Error(1)
}

func (m *MockMinimumGuaranteedRepository) FindAt(ctx context.Context, driverID uuid.UUID, date time.Time) (*payroll.MinimumGuaranteedEntry, error) {
	args := m.Called(ctx, driverID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.MinimumGuaranteedEntry), args.Error(1)
}

func (m *MockMinimumGuaranteedRepository) FindAllByDriver(ctx context.Context, driverID uuid.UUID) ([]payroll.MinimumGuaranteedEntry, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).([]payroll.MinimumGuaranteedEntry), args.Error(1)
}

func (m *MockMinimumGuaranteedRepository) Save(ctx context.Context, entry *payroll.MinimumGuaranteedEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockOtherItemRepository is a mock implementation of payroll.OtherItemRepository
type MockOtherItemRepository struct {
	mock.Mock
}

func (m *MockOtherItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.OtherItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.OtherItem), args.Error(1)
}

func (m *MockOtherItemRepository) FindByDriverAndPeriod(ctx context.Context, driverID, periodID uuid.UUID) ([]payroll.OtherItem, error) {
	args := m.Called(ctx, driverID, periodID)
	return args.Get(0).([]payroll.OtherItem), args.Error(1)
}

func (m *MockOtherItemRepository) FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]payroll.OtherItem, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).([]payroll.OtherItem), args.Error(1)
}

func (m *MockOtherItemRepository) Save(ctx context.Context, item *payroll.OtherItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOtherItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

// MockTripRepository is a mock implementation of fleet.TripRepository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Trip), args.Error(1)
}

func (m *MockTripRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Trip, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]fleet.Trip), args.Get(1).(int64), args.Error(2)
}

func (m *MockTripRepository) FindFinishedStartingBetween(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]fleet.Trip, error) {
	args := m.Called(ctx, driverID, from, to)
	return args.Get(0).([]fleet.Trip), args.Error(1)
}

func (m *MockTripRepository) CountUnfinishedStartingBetween(ctx context.Context, driverID *uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, driverID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTripRepository) Save(ctx context.Context, trip *fleet.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockExpenseRepository is a mock implementation of fleet.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Expense, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]fleet.Expense), args.Get(1).(int64), args.Error(2)
}

func (m *MockExpenseRepository) FindByDriverBetween(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]fleet.Expense, error) {
	args := m.Called(ctx, driverID, from, to)
	return args.Get(0).([]fleet.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *fleet.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAdvancePaymentRepository is a mock implementation of fleet.AdvancePaymentRepository
type MockAdvancePaymentRepository struct {
	mock.Mock
}

func (m *MockAdvancePaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.AdvancePayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.AdvancePayment), args.Error(1)
}

func (m *MockAdvancePaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.AdvancePayment, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]fleet.AdvancePayment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdvancePaymentRepository) FindByDriverBetween(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]fleet.AdvancePayment, error) {
	args := m.Called(ctx, driverID, from, to)
	return args.Get(0).([]fleet.AdvancePayment), args.Error(1)
}

func (m *MockAdvancePaymentRepository) Save(ctx context.Context, advance *fleet.AdvancePayment) error {
	args := m.Called(ctx, advance)
	return args.Error(0)
}

func (m *MockAdvancePaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRateResolver is a mock implementation of RateResolver
type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) CommissionAt(ctx context.Context, driverID uuid.UUID, date time.Time) (valueobject.Fraction, error) {
	args := m.Called(ctx, driverID, date)
	return args.Get(0).(valueobject.Fraction), args.Error(1)
}

func (m *MockRateResolver) MinimumGuaranteedAt(ctx context.Context, driverID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, driverID, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// notifierSpy records period notifications so tests can wait for the
// background dispatch without sleeping.
type notifierSpy struct {
	notified chan uuid.UUID
}

func newNotifierSpy() *notifierSpy {
	return &notifierSpy{notified: make(chan uuid.UUID, 1)}
}

func (n *notifierSpy) NotifyPeriodApproved(ctx context.Context, periodID uuid.UUID) {
	n.notified <- periodID
}
