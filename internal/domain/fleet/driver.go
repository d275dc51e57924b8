package fleet

import (
	"strings"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
)

// Driver represents a truck driver employed by the company.
type Driver struct {
	shared.BaseEntity
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Email              string     `json:"email"`
	DNI                string     `json:"dni"`
	CUIL               string     `json:"cuil"`
	PhoneNumber        string     `json:"phone_number"`
	CBU                string     `json:"cbu"`
	Active             bool       `json:"active"`
	EnrollmentDate     time.Time  `json:"enrollment_date"`
	TerminationDate    *time.Time `json:"termination_date"`
	LicenseDueDate     *time.Time `json:"license_due_date"`
	MedicalExamDueDate *time.Time `json:"medical_exam_due_date"`
}

// NewDriver creates a new active driver
func NewDriver(firstName, lastName, email, dni, cuil string, enrollmentDate time.Time) (*Driver, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Driver first and last name are required")
	}
	if strings.TrimSpace(dni) == "" {
		return nil, shared.NewDomainError("INVALID_DNI", "Driver DNI is required")
	}
	return &Driver{
		BaseEntity:     shared.NewBaseEntity(),
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		DNI:            dni,
		CUIL:           cuil,
		Active:         true,
		EnrollmentDate: enrollmentDate,
	}, nil
}

// FullName returns the driver's display name
func (d *Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Deactivate marks the driver as inactive as of the given date
func (d *Driver) Deactivate(terminationDate time.Time) {
	d.Active = false
	d.TerminationDate = &terminationDate
	d.Touch()
}
