package fleet

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DriverRepository provides access to drivers
type DriverRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Driver, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Driver, error)
	FindActive(ctx context.Context) ([]Driver, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Driver, int64, error)
	Save(ctx context.Context, driver *Driver) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TruckRepository provides access to trucks
type TruckRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Truck, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Truck, int64, error)
	Save(ctx context.Context, truck *Truck) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientRepository provides access to clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, int64, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TripRepository provides access to trips.
// Period queries select on start_date, inclusive on both bounds.
type TripRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Trip, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Trip, int64, error)
	// FindFinishedStartingBetween returns the driver's FINISHED trips whose
	// start_date falls inside [from, to].
	FindFinishedStartingBetween(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]Trip, error)
	// CountUnfinishedStartingBetween counts PENDING and IN_PROGRESS trips
	// starting inside [from, to]. A nil driverID counts across all drivers.
	CountUnfinishedStartingBetween(ctx context.Context, driverID *uuid.UUID, from, to time.Time) (int64, error)
	Save(ctx context.Context, trip *Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseRepository provides access to expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, int64, error)
	// FindByDriverBetween returns the driver's expenses dated inside [from, to].
	FindByDriverBetween(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]Expense, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdvancePaymentRepository provides access to advance payments
type AdvancePaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AdvancePayment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]AdvancePayment, int64, error)
	// FindByDriverBetween returns the driver's advances dated inside [from, to].
	FindByDriverBetween(ctx context.Context, driverID uuid.UUID, from, to time.Time) ([]AdvancePayment, error)
	Save(ctx context.Context, advance *AdvancePayment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
