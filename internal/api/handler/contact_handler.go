package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telemedpro/booking-api/internal/api/metrics"
	"github.com/telemedpro/booking-api/internal/core/domain"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

// ContactHandler handles the website contact form and its message inbox.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required,oneof=general technical billing appointment feedback"`
	Message string `json:"message" validate:"required"`
}

type contactMessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type listContactMessagesResponse struct {
	Messages []contactMessageResponse `json:"messages"`
}

func toContactMessageResponse(m *domain.ContactMessage) contactMessageResponse {
	return contactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   string(m.Subject),
		Message:   m.Message,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

// Submit accepts a contact form submission.
//
// @Summary      Submit a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Message details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /contact/submit [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.service.Submit(c.Request().Context(), ports.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	metrics.ContactMessagesTotal.WithLabelValues(string(msg.Subject)).Inc()

	return c.JSON(http.StatusCreated, messageResponse{Message: "thank you for contacting us, we will get back to you soon"})
}

// Messages lists received contact messages, newest first.
//
// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Success      200  {object}  listContactMessagesResponse
// @Router       /contact/messages [get]
func (h *ContactHandler) Messages(c echo.Context) error {
	messages, err := h.service.Messages(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]contactMessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, toContactMessageResponse(&messages[i]))
	}

	return c.JSON(http.StatusOK, listContactMessagesResponse{Messages: out})
}
