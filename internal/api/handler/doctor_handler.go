package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telemedpro/booking-api/internal/core/domain"
	"github.com/telemedpro/booking-api/internal/core/ports"
)

// DoctorHandler serves the public doctor roster.
type DoctorHandler struct {
	repo ports.DoctorRepository
}

func NewDoctorHandler(repo ports.DoctorRepository) *DoctorHandler {
	return &DoctorHandler{repo: repo}
}

type doctorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Specialty   string    `json:"specialty"`
	Bio         string    `json:"bio,omitempty"`
	Credentials string    `json:"credentials,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type listDoctorsResponse struct {
	Doctors []doctorResponse `json:"doctors"`
}

func toDoctorResponse(d *domain.Doctor) doctorResponse {
	return doctorResponse{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		Specialty:   d.Specialty,
		Bio:         d.Bio,
		Credentials: d.Credentials,
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
	}
}

// List returns the active doctors, ordered by name.
//
// @Summary      List doctors
// @Tags         doctors
// @Produce      json
// @Success      200  {object}  listDoctorsResponse
// @Router       /doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.repo.ListActive(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]doctorResponse, 0, len(doctors))
	for i := range doctors {
		out = append(out, toDoctorResponse(&doctors[i]))
	}

	return c.JSON(http.StatusOK, listDoctorsResponse{Doctors: out})
}
