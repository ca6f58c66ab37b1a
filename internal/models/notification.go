package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only feed record, never mutated after creation.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
