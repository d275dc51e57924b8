package payroll

import (
	"fmt"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
)

// PayrollPeriod is a calendar-month settlement window. At most one period
// exists per (year, month); periods are never deleted once summaries
// reference them.
type PayrollPeriod struct {
	shared.BaseEntity
	Year               int        `json:"year"`
	Month              int        `json:"month"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            time.Time  `json:"end_date"`
	HasTripsInProgress bool       `json:"has_trips_in_progress"`
	NotifiedAt         *time.Time `json:"notified_at"`
}

// MonthBounds returns the first and last day of the given calendar month
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end
}

// NewPayrollPeriod creates a period for the given month with calendar bounds
func NewPayrollPeriod(year, month int) (*PayrollPeriod, error) {
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_MONTH", fmt.Sprintf("Month must be 1-12, got %d", month))
	}
	if year < 2000 || year > 2200 {
		return nil, shared.NewDomainError("INVALID_YEAR", fmt.Sprintf("Year %d is out of range", year))
	}
	start, end := MonthBounds(year, month)
	return &PayrollPeriod{
		BaseEntity: shared.NewBaseEntity(),
		Year:       year,
		Month:      month,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

// Label returns the period's display name, e.g. "2026-03"
func (p *PayrollPeriod) Label() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Contains reports whether a date falls inside the period, bounds inclusive
func (p *PayrollPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// SetTripsInProgress updates the informational in-progress flag
func (p *PayrollPeriod) SetTripsInProgress(v bool) {
	p.HasTripsInProgress = v
	p.Touch()
}

// MarkNotified records that the all-approved notification was dispatched.
// Returns false when the period was already notified.
func (p *PayrollPeriod) MarkNotified(at time.Time) bool {
	if p.NotifiedAt != nil {
		return false
	}
	p.NotifiedAt = &at
	p.Touch()
	return true
}
