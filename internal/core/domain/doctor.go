package domain

import "time"

// Doctor is a read-only roster entry shown on the clinic's website. The
// roster is seeded by migration and has no lifecycle operations in this API.
type Doctor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Specialty   string    `json:"specialty"`
	Bio         string    `json:"bio,omitempty"`
	Credentials string    `json:"credentials,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
