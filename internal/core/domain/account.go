package domain

import (
	"errors"
	"regexp"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailTaken = errors.New("an account with this email already exists")
var ErrAccountNotFound = errors.New("account not found")
var ErrAuthRequired = errors.New("authentication required")

// Account models a registered patient account.
type Account struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Identity is the caller identity bound to a session token. It is passed
// explicitly into every service call that cares about ownership; a nil
// *Identity means an anonymous caller.
type Identity struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

// emailRx accepts the local@domain.tld shape. Deliverability is not checked.
var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has a plausible email shape.
func ValidEmail(s string) bool {
	return emailRx.MatchString(s)
}
