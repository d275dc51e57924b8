package fleet

import (
	"context"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReferenceService manages the small reference entities trips hang off:
// trucks and clients.
type ReferenceService struct {
	truckRepo  fleet.TruckRepository
	clientRepo fleet.ClientRepository
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(truckRepo fleet.TruckRepository, clientRepo fleet.ClientRepository) *ReferenceService {
	return &ReferenceService{
		truckRepo:  truckRepo,
		clientRepo: clientRepo,
	}
}

// CreateTruck registers a new truck
func (s *ReferenceService) CreateTruck(ctx context.Context, licensePlate, brand, model string, year int) (*fleet.Truck, error) {
	truck, err := fleet.NewTruck(licensePlate, brand, model, year)
	if err != nil {
		return nil, err
	}
	if err := s.truckRepo.Save(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

// GetTruck returns a truck by its identifier
func (s *ReferenceService) GetTruck(ctx context.Context, id uuid.UUID) (*fleet.Truck, error) {
	return s.truckRepo.FindByID(ctx, id)
}

// ListTrucks returns trucks matching the filter
func (s *ReferenceService) ListTrucks(ctx context.Context, filter shared.Filter) ([]fleet.Truck, int64, error) {
	return s.truckRepo.FindAll(ctx, filter)
}

// DeleteTruck removes a truck
func (s *ReferenceService) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	if _, err := s.truckRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.truckRepo.Delete(ctx, id)
}

// CreateClient registers a new client
func (s *ReferenceService) CreateClient(ctx context.Context, name, taxID, email, phoneNumber string) (*fleet.Client, error) {
	client, err := fleet.NewClient(name, taxID, email)
	if err != nil {
		return nil, err
	}
	client.PhoneNumber = phoneNumber
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient returns a client by its identifier
func (s *ReferenceService) GetClient(ctx context.Context, id uuid.UUID) (*fleet.Client, error) {
	return s.clientRepo.FindByID(ctx, id)
}

// ListClients returns clients matching the filter
func (s *ReferenceService) ListClients(ctx context.Context, filter shared.Filter) ([]fleet.Client, int64, error) {
	return s.clientRepo.FindAll(ctx, filter)
}

// DeleteClient removes a client
func (s *ReferenceService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}
