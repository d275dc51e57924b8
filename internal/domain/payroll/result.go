package payroll

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionOutcome tags the result of a trip-commission pass
type CommissionOutcome int

const (
	// CommissionOK means every eligible trip was settled
	CommissionOK CommissionOutcome = iota
	// CommissionMissingRate means a strict pass found trips without a
	// usable tariff; the caller turns this into an ERROR summary
	CommissionMissingRate
)

// CommissionResult is the tagged outcome of the trip-commission calculator.
// MissingRateTrips is populated only for CommissionMissingRate; Details and
// IncludedTripIDs only for CommissionOK. IncludedTripIDs feeds the client-
// advance lookup so advances are netted only for trips actually settled.
type CommissionResult struct {
	Outcome          CommissionOutcome
	Total            decimal.Decimal
	Details          []*PayrollDetail
	IncludedTripIDs  []uuid.UUID
	MissingRateTrips []MissingRateTrip
}

// MissingRateTrip identifies a trip that blocked a strict calculation
type MissingRateTrip struct {
	TripID    uuid.UUID
	Reference string
}
