package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PeriodRepository provides access to payroll periods
type PeriodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PayrollPeriod, error)
	FindByYearMonth(ctx context.Context, year, month int) (*PayrollPeriod, error)
	FindAll(ctx context.Context, page, pageSize int) ([]PayrollPeriod, int64, error)
	Save(ctx context.Context, period *PayrollPeriod) error
}

// CommissionHistoryRepository stores the commission-fraction temporal ledger
type CommissionHistoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CommissionHistoryEntry, error)
	// FindOpenByDriver returns the driver's entry with effective_until NULL,
	// or shared.ErrNotFound.
	FindOpenByDriver(ctx context.Context, driverID uuid.UUID) (*CommissionHistoryEntry, error)
	// FindAt returns the entry covering date, ordered by effective_from
	// descending, first match wins.
	FindAt(ctx context.Context, driverID uuid.UUID, date time.Time) (*CommissionHistoryEntry, error)
	FindAllByDriver(ctx context.Context, driverID uuid.UUID) ([]CommissionHistoryEntry, error)
	Save(ctx context.Context, entry *CommissionHistoryEntry) error
}

// MinimumGuaranteedRepository stores the guaranteed-minimum temporal ledger
type MinimumGuaranteedRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MinimumGuaranteedEntry, error)
	FindOpenByDriver(ctx context.Context, driverID uuid.UUID) (*MinimumGuaranteedEntry, error)
	FindAt(ctx context.Context, driverID uuid.UUID, date time.Time) (*MinimumGuaranteedEntry, error)
	FindAllByDriver(ctx context.Context, driverID uuid.UUID) ([]MinimumGuaranteedEntry, error)
	Save(ctx context.Context, entry *MinimumGuaranteedEntry) error
}

// OtherItemRepository provides access to manually entered settlement items
type OtherItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OtherItem, error)
	FindByDriverAndPeriod(ctx context.Context, driverID, periodID uuid.UUID) ([]OtherItem, error)
	FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]OtherItem, error)
	Save(ctx context.Context, item *OtherItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SummaryFilter narrows summary listings
type SummaryFilter struct {
	PeriodID *uuid.UUID
	DriverID *uuid.UUID
	Status   *SummaryStatus
	Page     int
	PageSize int
}

// SummaryRepository provides access to payroll summaries and their detail
// rows. Mutations that touch both the summary and its details run inside a
// single database transaction so readers never observe half a calculation.
type SummaryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PayrollSummary, error)
	FindByPeriodAndDriver(ctx context.Context, periodID, driverID uuid.UUID) (*PayrollSummary, error)
	FindAll(ctx context.Context, filter SummaryFilter) ([]PayrollSummary, int64, error)
	FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]PayrollSummary, error)
	FindDetails(ctx context.Context, summaryID uuid.UUID) ([]PayrollDetail, error)
	// CreateWithDetails inserts the summary and its detail rows atomically.
	// A concurrent insert for the same (period, driver) surfaces as
	// shared.ErrConcurrencyConflict.
	CreateWithDetails(ctx context.Context, summary *PayrollSummary, details []*PayrollDetail) error
	// ReplaceWithDetails updates the summary and swaps all its detail rows
	// in one transaction.
	ReplaceWithDetails(ctx context.Context, summary *PayrollSummary, details []*PayrollDetail) error
	Save(ctx context.Context, summary *PayrollSummary) error
	// Delete removes a summary and its details. Approved summaries are
	// protected at the service layer.
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByPeriodNotInStatus counts the period's summaries whose status
	// differs from the given one (used for the all-approved check).
	CountByPeriodNotInStatus(ctx context.Context, periodID uuid.UUID, status SummaryStatus) (int64, error)
}
