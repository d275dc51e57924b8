package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/fleet/backend/internal/domain/identity"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TokenIssuer creates signed access tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string, role identity.Role) (string, error)
}

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// AuthService handles user authentication and account management
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	hasher   PasswordHasher
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, hasher PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

// Login verifies the credentials and returns a signed token with the user.
// Wrong email and wrong password return the same error so the endpoint
// does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *identity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return "", nil, err
	}
	if !user.Active || !s.hasher.Verify(user.PasswordHash, password) {
		return "", nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, email, name, password string, role identity.Role) (*identity.User, error) {
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if _, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email))); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(email, name, hash, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID returns a user by its identifier
func (s *AuthService) GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}
