// Package models - lookup.go defines the category and panchayath lookup rows
// behind the report screen's filter dropdowns.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a registration category (licence type).
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Panchayath is a local administrative area a registration belongs to.
type Panchayath struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	District  string    `json:"district" db:"district"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
