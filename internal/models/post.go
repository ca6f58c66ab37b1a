package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID          `json:"id"`
	Text      string             `json:"text"`
	AuthorID  uuid.UUID          `json:"authorId"`
	CreatedAt time.Time          `json:"createdAt"`
	UpVotes   int                `json:"upVotes"`   // never negative
	DownVotes int                `json:"downVotes"` // never negative
	Comments  []*Comment         `json:"comments"`  // insertion order, oldest first
	LikedBy   map[uuid.UUID]bool `json:"likedBy"`
}
