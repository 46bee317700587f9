package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telemedpro/booking-api/internal/api/metrics"
	"github.com/telemedpro/booking-api/internal/api/middleware"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

// AuthHandler handles registration, login, logout and session introspection.
// The session token travels in an HttpOnly cookie, never in the JSON body.
type AuthHandler struct {
	service      ports.AuthService
	sessionTTL   time.Duration
	cookieSecure bool
}

func NewAuthHandler(service ports.AuthService, sessionTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: service, sessionTTL: sessionTTL, cookieSecure: cookieSecure}
}

// Register creates a new patient account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.AccountsRegisteredTotal.Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Message: "account created successfully",
		User:    toAccountResponse(account),
	})
}

// Login authenticates an account and establishes a cookie session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, account, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.sessionCookie(token, h.sessionTTL))

	return c.JSON(http.StatusOK, authResponse{
		Message: "login successful",
		User:    toAccountResponse(account),
	})
}

// Logout destroys the caller's session and expires the cookie. Safe to call
// without a session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.service.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	expired := h.sessionCookie("", -time.Hour)
	c.SetCookie(expired)

	return c.JSON(http.StatusOK, messageResponse{Message: "logged out successfully"})
}

// Me returns the authenticated caller's account.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity := middleware.Identity(c)

	account, err := h.service.Account(c.Request().Context(), identity.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Status reports whether the request carries a live session. Unlike Me it
// never fails: anonymous callers get {"authenticated": false}.
//
// @Summary      Session status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /auth/status [get]
func (h *AuthHandler) Status(c echo.Context) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return c.JSON(http.StatusOK, statusResponse{Authenticated: false})
	}

	account, err := h.service.Account(c.Request().Context(), identity.AccountID)
	if err != nil {
		// The account vanished underneath a live session; report anonymous.
		return c.JSON(http.StatusOK, statusResponse{Authenticated: false})
	}

	resp := toAccountResponse(account)
	return c.JSON(http.StatusOK, statusResponse{Authenticated: true, User: &resp})
}

// sessionCookie builds the session cookie. A non-positive maxAge expires it.
func (h *AuthHandler) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
