package model

import (
	"time"
)

// Adoption is the join record written once by the adoption workflow
// and never mutated or deleted afterwards.
type Adoption struct {
	ID    string    `json:"id"`
	Owner string    `json:"owner"`
	Pet   string    `json:"pet"`
	Date  time.Time `json:"date"`
}
