package fleet

import (
	"fmt"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripState represents the lifecycle state of a trip
type TripState string

const (
	TripStatePending    TripState = "PENDING"
	TripStateInProgress TripState = "IN_PROGRESS"
	TripStateFinished   TripState = "FINISHED"
)

// IsValid checks if the state is a valid TripState
func (s TripState) IsValid() bool {
	switch s {
	case TripStatePending, TripStateInProgress, TripStateFinished:
		return true
	}
	return false
}

// String returns the string representation of TripState
func (s TripState) String() string {
	return string(s)
}

// BillingMode determines how a trip's base amount is computed
type BillingMode string

const (
	// BillingPerDistance bills rate x estimated kilometers
	BillingPerDistance BillingMode = "PER_DISTANCE"
	// BillingPerWeight bills rate x unloaded weight in tons
	BillingPerWeight BillingMode = "PER_WEIGHT"
)

// IsValid checks if the mode is a valid BillingMode
func (m BillingMode) IsValid() bool {
	return m == BillingPerDistance || m == BillingPerWeight
}

// Trip represents a shipment hauled by a driver.
type Trip struct {
	shared.BaseEntity
	DocumentNumber       string          `json:"document_number"`
	Origin               string          `json:"origin"`
	Destination          string          `json:"destination"`
	DriverID             uuid.UUID       `json:"driver_id"`
	ClientID             uuid.UUID       `json:"client_id"`
	TruckID              *uuid.UUID      `json:"truck_id"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              *time.Time      `json:"end_date"`
	State                TripState       `json:"state"`
	BillingMode          BillingMode     `json:"billing_mode"`
	Rate                 decimal.Decimal `json:"rate"`
	EstimatedKms         decimal.Decimal `json:"estimated_kms"`
	LoadWeightOnLoad     decimal.Decimal `json:"load_weight_on_load"`
	LoadWeightOnUnload   decimal.Decimal `json:"load_weight_on_unload"`
	ClientAdvancePayment decimal.Decimal `json:"client_advance_payment"`
}

// NewTrip creates a new pending trip
func NewTrip(driverID, clientID uuid.UUID, origin, destination string, startDate time.Time, mode BillingMode) (*Trip, error) {
	if origin == "" || destination == "" {
		return nil, shared.NewDomainError("INVALID_ROUTE", "Trip origin and destination are required")
	}
	if driverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRIVER", "Trip driver is required")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_BILLING_MODE", "Trip billing mode is not valid")
	}
	return &Trip{
		BaseEntity:  shared.NewBaseEntity(),
		DriverID:    driverID,
		ClientID:    clientID,
		Origin:      origin,
		Destination: destination,
		StartDate:   startDate,
		State:       TripStatePending,
		BillingMode: mode,
	}, nil
}

// Start moves the trip to in-progress
func (t *Trip) Start() error {
	if t.State != TripStatePending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start trip in %s state", t.State))
	}
	t.State = TripStateInProgress
	t.Touch()
	return nil
}

// Finish closes the trip, recording the unload weight
func (t *Trip) Finish(endDate time.Time, loadWeightOnUnload decimal.Decimal) error {
	if t.State == TripStateFinished {
		return shared.NewDomainError("INVALID_STATE", "Trip is already finished")
	}
	t.State = TripStateFinished
	t.EndDate = &endDate
	t.LoadWeightOnUnload = loadWeightOnUnload
	t.Touch()
	return nil
}

// IsFinished returns true if the trip has been completed
func (t *Trip) IsFinished() bool {
	return t.State == TripStateFinished
}

// baseQuantity returns the billing-mode dependent quantity the rate applies to
func (t *Trip) baseQuantity() decimal.Decimal {
	if t.BillingMode == BillingPerDistance {
		return t.EstimatedKms
	}
	return t.LoadWeightOnUnload
}

// HasUsableRate reports whether the trip carries enough tariff data to be
// settled: a positive rate and a positive base quantity for its billing mode.
func (t *Trip) HasUsableRate() bool {
	return t.Rate.IsPositive() && t.baseQuantity().IsPositive()
}

// BaseAmount computes rate x quantity for the trip's billing mode.
// Callers must check HasUsableRate first.
func (t *Trip) BaseAmount() decimal.Decimal {
	return t.Rate.Mul(t.baseQuantity())
}

// Reference returns a short human-readable identifier for detail lines
func (t *Trip) Reference() string {
	if t.DocumentNumber != "" {
		return fmt.Sprintf("Trip %s %s - %s", t.DocumentNumber, t.Origin, t.Destination)
	}
	return fmt.Sprintf("Trip %s - %s (%s)", t.Origin, t.Destination, t.StartDate.Format("02/01/2006"))
}
