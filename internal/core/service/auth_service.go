package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/telemedpro/booking-api/internal/core/domain"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

// bcryptCost matches the cost the clinic has always hashed with; existing
// hashes verify regardless.
const bcryptCost = 12

const minPasswordLen = 6

// AuthService implements registration, login, and session teardown on top of
// the account repository and the session store.
type AuthService struct {
	accounts ports.AccountRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(accounts ports.AccountRepository, sessions ports.SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	if name == "" || email == "" || input.Password == "" {
		return nil, domain.NewValidationError("all fields are required")
	}
	if !domain.ValidEmail(email) {
		return nil, domain.NewValidationError("please provide a valid email address")
	}
	if len(input.Password) < minPasswordLen {
		return nil, domain.NewValidationError("password must be at least 6 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Msg("account registered")
	return account, nil
}

// Login authenticates the credentials and establishes a session. Unknown
// email and wrong password both fail with domain.ErrInvalidCredentials so the
// response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("email and password are required")
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, domain.Identity{
		AccountID: account.ID,
		Email:     account.Email,
		Name:      account.Name,
	})
	if err != nil {
		return "", nil, err
	}

	loginAt := s.now().UTC()
	if err := s.accounts.UpdateLastLogin(ctx, account.ID, loginAt); err != nil {
		// The session is already live; a stale last_login_at is not worth
		// failing the login over.
		s.logger.Warn().Err(err).Str("account_id", account.ID).Msg("failed to update last login")
	} else {
		account.LastLoginAt = &loginAt
	}

	s.logger.Info().Str("account_id", account.ID).Msg("login successful")
	return token, account, nil
}

// Logout destroys the caller's session. Unknown or empty tokens are not an
// error: revealing whether a token existed leaks nothing useful and double
// logout must not fail.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

func (s *AuthService) Account(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, accountID)
}
