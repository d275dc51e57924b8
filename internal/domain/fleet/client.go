package fleet

import (
	"strings"

	"github.com/fleet/backend/internal/domain/shared"
)

// Client represents a customer the company hauls loads for.
type Client struct {
	shared.BaseEntity
	Name        string `json:"name"`
	TaxID       string `json:"tax_id"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// NewClient creates a new client
func NewClient(name, taxID, email string) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name is required")
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		TaxID:      taxID,
		Email:      email,
	}, nil
}
