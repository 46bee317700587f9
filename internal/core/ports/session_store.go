package ports

import (
	"context"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// SessionStore binds opaque tokens to caller identities with a fixed expiry
// window. Expired sessions behave exactly like sessions that never existed.
type SessionStore interface {
	// Create establishes a new session for the identity and returns the
	// opaque token the caller must present on subsequent requests.
	Create(ctx context.Context, identity domain.Identity) (string, error)
	// Load resolves a token to its identity. An unknown or expired token
	// yields (nil, nil): absence is not an error condition.
	Load(ctx context.Context, token string) (*domain.Identity, error)
	// Destroy removes the session. Destroying an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
}
