package core

import (
	"strings"
	"time"

	"campus-grove/internal/models"
	"campus-grove/internal/store"
	"campus-grove/internal/utils"

	"github.com/google/uuid"
)

// Membership drives the per-(user, community) state machine:
// non-member -> pending-request -> member, with an admin shortcut straight
// to member. It also owns community creation since the creator's membership
// is part of that operation.
type Membership struct {
	store  *store.Store
	notify Emitter
}

func NewMembership(s *store.Store, notify Emitter) *Membership {
	if notify == nil {
		notify = nopEmitter{}
	}
	return &Membership{store: s, notify: notify}
}

// JoinOutcome reports where the (user, community) pair landed after a join
// attempt.
type JoinOutcome struct {
	State     models.MembershipState `json:"state"`
	Community *models.Community      `json:"community"`
	Request   *models.JoinRequest    `json:"request,omitempty"`
}

// Join attempts to add the user to the community. Admin callers become
// members immediately; everyone else goes through a pending join request.
// Repeat calls are idempotent: an existing membership or pending request is
// returned as-is.
func (m *Membership) Join(userID, communityID uuid.UUID, asAdmin bool) (*JoinOutcome, error) {
	c, ok := m.store.Community(communityID)
	if !ok {
		return nil, utils.NewCommunityNotFoundError(communityID.String())
	}

	if c.IsMember(userID) {
		return &JoinOutcome{State: models.Member, Community: c}, nil
	}

	if asAdmin {
		c.AddMember(userID)
		m.notify.Emit("Joined " + c.Name)
		return &JoinOutcome{State: models.Member, Community: c}, nil
	}

	if r, ok := m.store.PendingRequest(userID, communityID); ok {
		return &JoinOutcome{State: models.PendingRequest, Community: c, Request: r}, nil
	}

	r := &models.JoinRequest{
		ID:          m.store.NewID(),
		UserID:      userID,
		CommunityID: communityID,
		Status:      models.RequestPending,
		CreatedAt:   time.Now(),
	}
	m.store.AddRequest(r)
	m.notify.Emit("Join request for " + c.Name)
	return &JoinOutcome{State: models.PendingRequest, Community: c, Request: r}, nil
}

// ApproveRequest transitions a pending request to approved and adds the user
// to the community. Approving a request that is already terminal is a no-op.
func (m *Membership) ApproveRequest(requestID uuid.UUID) (*models.JoinRequest, error) {
	r, ok := m.store.Request(requestID)
	if !ok {
		return nil, utils.NewRequestNotFoundError(requestID.String())
	}
	if r.Status.Terminal() {
		return r, nil
	}

	r.Status = models.RequestApproved

	// Tolerate a dangling community reference: the request still reaches
	// its terminal state.
	if c, ok := m.store.Community(r.CommunityID); ok {
		if c.AddMember(r.UserID) {
			m.notify.Emit("Approved to join " + c.Name)
		}
	}
	return r, nil
}

// RejectRequest transitions a pending request to rejected. Rejection is not
// sticky: a later Join call may open a fresh pending request.
func (m *Membership) RejectRequest(requestID uuid.UUID) (*models.JoinRequest, error) {
	r, ok := m.store.Request(requestID)
	if !ok {
		return nil, utils.NewRequestNotFoundError(requestID.String())
	}
	if r.Status.Terminal() {
		return r, nil
	}
	r.Status = models.RequestRejected
	return r, nil
}

// AutoJoinChild adds the user to the earliest-created direct child of the
// given community. Returns nil without error when no child exists.
func (m *Membership) AutoJoinChild(userID, parentID uuid.UUID) (*models.Community, error) {
	child, ok := m.store.ChildOf(parentID)
	if !ok {
		return nil, nil
	}
	if child.AddMember(userID) {
		m.notify.Emit("Auto-joined " + child.Name)
	}
	return child, nil
}

// CreateCommunity creates a community with the creator as its sole member.
// A parent, when given, must exist and must itself be a root community:
// nesting is a single level deep.
func (m *Membership) CreateCommunity(name string, parentID *uuid.UUID, creatorID uuid.UUID) (*models.Community, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.NewValidationError("community name is required")
	}

	if parentID != nil {
		parent, ok := m.store.Community(*parentID)
		if !ok {
			return nil, utils.NewCommunityNotFoundError(parentID.String())
		}
		if parent.ParentID != nil {
			return nil, utils.NewAppError(utils.ErrConflict,
				"communities nest a single level: "+parent.Name+" is itself a child", nil)
		}
		id := *parentID
		parentID = &id
	}

	c := &models.Community{
		ID:        m.store.NewID(),
		Name:      name,
		ParentID:  parentID,
		Members:   map[uuid.UUID]bool{creatorID: true},
		Posts:     make([]*models.Post, 0),
		CreatedAt: time.Now(),
	}
	m.store.AddCommunity(c)
	m.notify.Emit("New community created: " + name)
	return c, nil
}

// RequestStatus returns the status of the most recent request for the pair.
func (m *Membership) RequestStatus(userID, communityID uuid.UUID) (models.JoinRequestStatus, bool) {
	r, ok := m.store.LatestRequest(userID, communityID)
	if !ok {
		return "", false
	}
	return r.Status, true
}

// PendingRequests lists all pending requests in creation order.
func (m *Membership) PendingRequests() []*models.JoinRequest {
	return m.store.PendingRequests()
}

// RequestsForUser lists every request the user has filed.
func (m *Membership) RequestsForUser(userID uuid.UUID) []*models.JoinRequest {
	return m.store.RequestsForUser(userID)
}

// JoinedCommunities lists the communities the user belongs to, in creation
// order.
func (m *Membership) JoinedCommunities(userID uuid.UUID) []*models.Community {
	joined := make([]*models.Community, 0)
	for _, c := range m.store.Communities() {
		if c.IsMember(userID) {
			joined = append(joined, c)
		}
	}
	return joined
}
