package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one post. Comments carry likes but no vote
// counters.
type Comment struct {
	ID        uuid.UUID          `json:"id"`
	Text      string             `json:"text"`
	AuthorID  uuid.UUID          `json:"authorId"`
	PostID    uuid.UUID          `json:"postId"`
	CreatedAt time.Time          `json:"createdAt"`
	LikedBy   map[uuid.UUID]bool `json:"likedBy"`
}
