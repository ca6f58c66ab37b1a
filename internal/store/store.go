package store

import (
	"campus-grove/internal/models"

	"github.com/google/uuid"
)

// Store is the authoritative holder of all entity records plus the lookup
// indices the engines need. It carries no business rules: lookups report
// misses with an ok bool and callers decide what a miss means.
//
// The store is not safe for concurrent use. A single actor owns each store
// instance and serializes every read and write through its mailbox.
type Store struct {
	ids IDGen

	users          map[uuid.UUID]*models.User
	communities    map[uuid.UUID]*models.Community
	communityOrder []uuid.UUID

	posts         map[uuid.UUID]*models.Post
	postCommunity map[uuid.UUID]uuid.UUID

	comments    map[uuid.UUID]*models.Comment
	commentPost map[uuid.UUID]uuid.UUID

	requests     map[uuid.UUID]*models.JoinRequest
	requestOrder []uuid.UUID
}

func NewStore(ids IDGen) *Store {
	if ids == nil {
		ids = RandomIDs{}
	}
	return &Store{
		ids:           ids,
		users:         make(map[uuid.UUID]*models.User),
		communities:   make(map[uuid.UUID]*models.Community),
		posts:         make(map[uuid.UUID]*models.Post),
		postCommunity: make(map[uuid.UUID]uuid.UUID),
		comments:      make(map[uuid.UUID]*models.Comment),
		commentPost:   make(map[uuid.UUID]uuid.UUID),
		requests:      make(map[uuid.UUID]*models.JoinRequest),
	}
}

// NewID mints a fresh entity id from the injected generator.
func (s *Store) NewID() uuid.UUID { return s.ids.NewID() }

// Users

func (s *Store) PutUser(u *models.User) {
	s.users[u.ID] = u
}

func (s *Store) User(id uuid.UUID) (*models.User, bool) {
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) Users() []*models.User {
	users := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users
}

// Communities

func (s *Store) AddCommunity(c *models.Community) {
	s.communities[c.ID] = c
	s.communityOrder = append(s.communityOrder, c.ID)
}

func (s *Store) Community(id uuid.UUID) (*models.Community, bool) {
	c, ok := s.communities[id]
	return c, ok
}

// Communities returns all communities in creation order.
func (s *Store) Communities() []*models.Community {
	communities := make([]*models.Community, 0, len(s.communityOrder))
	for _, id := range s.communityOrder {
		communities = append(communities, s.communities[id])
	}
	return communities
}

// ChildOf returns the earliest-created direct child of the given community.
func (s *Store) ChildOf(parentID uuid.UUID) (*models.Community, bool) {
	for _, id := range s.communityOrder {
		c := s.communities[id]
		if c.ParentID != nil && *c.ParentID == parentID {
			return c, true
		}
	}
	return nil, false
}

func (s *Store) CommunityCount() int { return len(s.communities) }

// Posts

// AddPost prepends the post to the community's list (newest first) and
// records the ownership index.
func (s *Store) AddPost(c *models.Community, p *models.Post) {
	c.Posts = append([]*models.Post{p}, c.Posts...)
	s.posts[p.ID] = p
	s.postCommunity[p.ID] = c.ID
}

func (s *Store) Post(id uuid.UUID) (*models.Post, bool) {
	p, ok := s.posts[id]
	return p, ok
}

// CommunityForPost resolves the community owning the given post.
func (s *Store) CommunityForPost(postID uuid.UUID) (*models.Community, bool) {
	communityID, ok := s.postCommunity[postID]
	if !ok {
		return nil, false
	}
	c, ok := s.communities[communityID]
	return c, ok
}

func (s *Store) PostCount() int { return len(s.posts) }

// Comments

// AddComment appends the comment to the post's list (chronological order)
// and records the ownership index.
func (s *Store) AddComment(p *models.Post, cm *models.Comment) {
	p.Comments = append(p.Comments, cm)
	s.comments[cm.ID] = cm
	s.commentPost[cm.ID] = p.ID
}

func (s *Store) Comment(id uuid.UUID) (*models.Comment, bool) {
	cm, ok := s.comments[id]
	return cm, ok
}

// PostForComment resolves the post owning the given comment.
func (s *Store) PostForComment(commentID uuid.UUID) (*models.Post, bool) {
	postID, ok := s.commentPost[commentID]
	if !ok {
		return nil, false
	}
	p, ok := s.posts[postID]
	return p, ok
}

func (s *Store) CommentCount() int { return len(s.comments) }

// Join requests

func (s *Store) AddRequest(r *models.JoinRequest) {
	s.requests[r.ID] = r
	s.requestOrder = append(s.requestOrder, r.ID)
}

func (s *Store) Request(id uuid.UUID) (*models.JoinRequest, bool) {
	r, ok := s.requests[id]
	return r, ok
}

// PendingRequest returns the pending request for the (user, community) pair,
// if one exists. The membership engine guarantees at most one.
func (s *Store) PendingRequest(userID, communityID uuid.UUID) (*models.JoinRequest, bool) {
	for _, id := range s.requestOrder {
		r := s.requests[id]
		if r.UserID == userID && r.CommunityID == communityID && r.Status == models.RequestPending {
			return r, true
		}
	}
	return nil, false
}

// LatestRequest returns the most recent request for the (user, community)
// pair regardless of status.
func (s *Store) LatestRequest(userID, communityID uuid.UUID) (*models.JoinRequest, bool) {
	for i := len(s.requestOrder) - 1; i >= 0; i-- {
		r := s.requests[s.requestOrder[i]]
		if r.UserID == userID && r.CommunityID == communityID {
			return r, true
		}
	}
	return nil, false
}

// PendingRequests returns all pending requests in creation order.
func (s *Store) PendingRequests() []*models.JoinRequest {
	pending := make([]*models.JoinRequest, 0)
	for _, id := range s.requestOrder {
		if r := s.requests[id]; r.Status == models.RequestPending {
			pending = append(pending, r)
		}
	}
	return pending
}

// RequestsForUser returns all requests filed by the user, in creation order.
func (s *Store) RequestsForUser(userID uuid.UUID) []*models.JoinRequest {
	requests := make([]*models.JoinRequest, 0)
	for _, id := range s.requestOrder {
		if r := s.requests[id]; r.UserID == userID {
			requests = append(requests, r)
		}
	}
	return requests
}
