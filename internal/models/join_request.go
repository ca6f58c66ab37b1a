package models

import (
	"time"

	"github.com/google/uuid"
)

// JoinRequestStatus represents the lifecycle state of a join request.
type JoinRequestStatus string

const (
	RequestPending  JoinRequestStatus = "pending"
	RequestApproved JoinRequestStatus = "approved"
	RequestRejected JoinRequestStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s JoinRequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// JoinRequest gates community membership for non-admin users. At most one
// pending request exists per (user, community) pair; once approved or
// rejected the record is immutable.
type JoinRequest struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	CommunityID uuid.UUID         `json:"communityId"`
	Status      JoinRequestStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}
