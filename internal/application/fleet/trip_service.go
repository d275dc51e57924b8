package fleet

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripInput carries the editable trip fields
type TripInput struct {
	DocumentNumber       string
	Origin               string
	Destination          string
	DriverID             uuid.UUID
	ClientID             uuid.UUID
	TruckID              *uuid.UUID
	StartDate            time.Time
	BillingMode          fleet.BillingMode
	Rate                 decimal.Decimal
	EstimatedKms         decimal.Decimal
	LoadWeightOnLoad     decimal.Decimal
	ClientAdvancePayment decimal.Decimal
}

// TripService manages trips
type TripService struct {
	tripRepo   fleet.TripRepository
	driverRepo fleet.DriverRepository
	clientRepo fleet.ClientRepository
}

// NewTripService creates a new TripService
func NewTripService(tripRepo fleet.TripRepository, driverRepo fleet.DriverRepository, clientRepo fleet.ClientRepository) *TripService {
	return &TripService{
		tripRepo:   tripRepo,
		driverRepo: driverRepo,
		clientRepo: clientRepo,
	}
}

// Create registers a new pending trip
func (s *TripService) Create(ctx context.Context, input TripInput) (*fleet.Trip, error) {
	if _, err := s.driverRepo.FindByID(ctx, input.DriverID); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}
	trip, err := fleet.NewTrip(input.DriverID, input.ClientID, input.Origin, input.Destination, input.StartDate, input.BillingMode)
	if err != nil {
		return nil, err
	}
	trip.DocumentNumber = input.DocumentNumber
	trip.TruckID = input.TruckID
	trip.Rate = input.Rate
	trip.EstimatedKms = input.EstimatedKms
	trip.LoadWeightOnLoad = input.LoadWeightOnLoad
	trip.ClientAdvancePayment = input.ClientAdvancePayment
	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Update modifies a trip's tariff and route data. Finished trips stay
// editable so missing rates found at calculation time can be corrected.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, input TripInput) (*fleet.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Origin == "" || input.Destination == "" {
		return nil, shared.NewDomainError("INVALID_ROUTE", "Trip origin and destination are required")
	}
	if !input.BillingMode.IsValid() {
		return nil, shared.NewDomainError("INVALID_BILLING_MODE", "Trip billing mode is not valid")
	}
	trip.DocumentNumber = input.DocumentNumber
	trip.Origin = input.Origin
	trip.Destination = input.Destination
	trip.TruckID = input.TruckID
	trip.StartDate = input.StartDate
	trip.BillingMode = input.BillingMode
	trip.Rate = input.Rate
	trip.EstimatedKms = input.EstimatedKms
	trip.LoadWeightOnLoad = input.LoadWeightOnLoad
	trip.ClientAdvancePayment = input.ClientAdvancePayment
	trip.Touch()
	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Start moves a pending trip to in-progress
func (s *TripService) Start(ctx context.Context, id uuid.UUID) (*fleet.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := trip.Start(); err != nil {
		return nil, err
	}
	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Finish closes a trip, recording the end date and unloaded weight
func (s *TripService) Finish(ctx context.Context, id uuid.UUID, endDate time.Time, loadWeightOnUnload decimal.Decimal) (*fleet.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := trip.Finish(endDate, loadWeightOnUnload); err != nil {
		return nil, err
	}
	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// GetByID returns a trip by its identifier
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (*fleet.Trip, error) {
	return s.tripRepo.FindByID(ctx, id)
}

// List returns trips matching the filter
func (s *TripService) List(ctx context.Context, filter shared.Filter) ([]fleet.Trip, int64, error) {
	return s.tripRepo.FindAll(ctx, filter)
}

// Delete removes a trip
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tripRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.tripRepo.Delete(ctx, id)
}
