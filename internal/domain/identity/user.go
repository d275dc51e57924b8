package identity

import (
	"context"
	"strings"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role represents a user's access level
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOffice Role = "office"
)

// User represents a back-office user account.
type User struct {
	shared.BaseEntity
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Active       bool   `json:"active"`
}

// NewUser creates a new active user with an already-hashed password
func NewUser(email, name, passwordHash string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "User email is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "User password hash is required")
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}, nil
}

// UserRepository provides access to user accounts
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
}
