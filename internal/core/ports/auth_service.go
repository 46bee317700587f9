package ports

import (
	"context"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements the account and session lifecycle: registration,
// login (which establishes a session), logout, and account lookup for the
// "who am I" endpoint.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// Login returns the session token to deliver to the caller plus the
	// authenticated account. Unknown email and wrong password are
	// indistinguishable: both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	// Logout destroys the session; unknown or empty tokens are a no-op.
	Logout(ctx context.Context, token string) error
	Account(ctx context.Context, accountID string) (*domain.Account, error)
}
