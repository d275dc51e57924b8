package fleet

import (
	"strings"

	"github.com/fleet/backend/internal/domain/shared"
)

// Truck represents a vehicle in the company fleet.
type Truck struct {
	shared.BaseEntity
	LicensePlate string `json:"license_plate"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Active       bool   `json:"active"`
}

// NewTruck creates a new truck
func NewTruck(licensePlate, brand, model string, year int) (*Truck, error) {
	if strings.TrimSpace(licensePlate) == "" {
		return nil, shared.NewDomainError("INVALID_LICENSE_PLATE", "Truck license plate is required")
	}
	return &Truck{
		BaseEntity:   shared.NewBaseEntity(),
		LicensePlate: strings.ToUpper(strings.TrimSpace(licensePlate)),
		Brand:        brand,
		Model:        model,
		Year:         year,
		Active:       true,
	}, nil
}
