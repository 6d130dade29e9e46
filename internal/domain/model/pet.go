package model

import (
	"time"
)

// Pet invariant: Owner is non-nil if and only if Adopted is true.
type Pet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specie    string    `json:"specie"`
	BirthDate time.Time `json:"birthDate"`
	Image     string    `json:"image,omitempty"`
	Adopted   bool      `json:"adopted"`
	Owner     *string   `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
