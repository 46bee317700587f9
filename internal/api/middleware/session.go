package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telemedpro/booking-api/internal/core/domain"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "user_sid"

// identityKey is the context key the resolved identity is stored under.
const identityKey = "identity"

// Session resolves the session cookie into a caller identity and injects it
// into the request context. Requests without a cookie, or with a token the
// store no longer knows, proceed as anonymous: booking and browsing never
// require an account.
func Session(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			identity, err := store.Load(c.Request().Context(), cookie.Value)
			if err != nil {
				// Store outage: treat the caller as anonymous rather than
				// failing public endpoints.
				return next(c)
			}
			if identity != nil {
				c.Set(identityKey, identity)
			}

			return next(c)
		}
	}
}

// RequireSession rejects requests that did not resolve to an authenticated
// identity. Must run after Session.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Identity(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrAuthRequired.Error())
			}
			return next(c)
		}
	}
}

// Identity returns the caller identity injected by Session, or nil for an
// anonymous request.
func Identity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}
