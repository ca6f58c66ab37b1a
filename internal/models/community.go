package models

import (
	"time"

	"github.com/google/uuid"
)

type Community struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	ParentID  *uuid.UUID         `json:"parentId,omitempty"` // nil for root communities
	Members   map[uuid.UUID]bool `json:"members"`
	Posts     []*Post            `json:"posts"` // newest first
	CreatedAt time.Time          `json:"createdAt"`
}

// IsMember reports whether the user belongs to the community.
func (c *Community) IsMember(userID uuid.UUID) bool {
	return c.Members[userID]
}

// AddMember inserts the user id into the member set. Returns false if the
// user was already a member.
func (c *Community) AddMember(userID uuid.UUID) bool {
	if c.Members[userID] {
		return false
	}
	c.Members[userID] = true
	return true
}
