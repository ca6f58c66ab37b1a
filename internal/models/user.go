package models

import (
	"github.com/google/uuid"
)

// User is provisioned externally; the engine only adjusts Impact and Badges.
type User struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Impact int       `json:"impact"` // never negative
	Badges []string  `json:"badges"` // append-only
}
