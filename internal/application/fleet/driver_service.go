package fleet

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/fleet"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DriverInput carries the editable driver fields
type DriverInput struct {
	FirstName          string
	LastName           string
	Email              string
	DNI                string
	CUIL               string
	PhoneNumber        string
	CBU                string
	EnrollmentDate     time.Time
	LicenseDueDate     *time.Time
	MedicalExamDueDate *time.Time
}

// DriverService manages drivers
type DriverService struct {
	driverRepo fleet.DriverRepository
}

// NewDriverService creates a new DriverService
func NewDriverService(driverRepo fleet.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// Create registers a new driver
func (s *DriverService) Create(ctx context.Context, input DriverInput) (*fleet.Driver, error) {
	driver, err := fleet.NewDriver(input.FirstName, input.LastName, input.Email, input.DNI, input.CUIL, input.EnrollmentDate)
	if err != nil {
		return nil, err
	}
	driver.PhoneNumber = input.PhoneNumber
	driver.CBU = input.CBU
	driver.LicenseDueDate = input.LicenseDueDate
	driver.MedicalExamDueDate = input.MedicalExamDueDate
	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Update modifies an existing driver
func (s *DriverService) Update(ctx context.Context, id uuid.UUID, input DriverInput) (*fleet.Driver, error) {
	driver, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Driver first and last name are required")
	}
	driver.FirstName = input.FirstName
	driver.LastName = input.LastName
	driver.Email = input.Email
	driver.DNI = input.DNI
	driver.CUIL = input.CUIL
	driver.PhoneNumber = input.PhoneNumber
	driver.CBU = input.CBU
	driver.EnrollmentDate = input.EnrollmentDate
	driver.LicenseDueDate = input.LicenseDueDate
	driver.MedicalExamDueDate = input.MedicalExamDueDate
	driver.Touch()
	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Deactivate marks a driver inactive; inactive drivers are skipped by the
// automatic payroll run.
func (s *DriverService) Deactivate(ctx context.Context, id uuid.UUID, terminationDate time.Time) (*fleet.Driver, error) {
	driver, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	driver.Deactivate(terminationDate)
	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetByID returns a driver by its identifier
func (s *DriverService) GetByID(ctx context.Context, id uuid.UUID) (*fleet.Driver, error) {
	return s.driverRepo.FindByID(ctx, id)
}

// List returns drivers matching the filter
func (s *DriverService) List(ctx context.Context, filter shared.Filter) ([]fleet.Driver, int64, error) {
	return s.driverRepo.FindAll(ctx, filter)
}
