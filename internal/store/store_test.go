package store

import (
	"testing"
	"time"

	"campus-grove/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newCommunity(s *Store, name string, parentID *uuid.UUID) *models.Community {
	c := &models.Community{
		ID:        s.NewID(),
		Name:      name,
		ParentID:  parentID,
		Members:   make(map[uuid.UUID]bool),
		Posts:     make([]*models.Post, 0),
		CreatedAt: time.Now(),
	}
	s.AddCommunity(c)
	return c
}

func TestSequentialIDs(t *testing.T) {
	ids := NewSequentialIDs()

	assert.Equal(t, "00000000-0000-0000-0000-000000000001", ids.NewID().String())
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", ids.NewID().String())
}

func TestStorePostOrdering(t *testing.T) {
	s := NewStore(NewSequentialIDs())
	c := newCommunity(s, "test", nil)

	first := &models.Post{ID: s.NewID(), Text: "first"}
	second := &models.Post{ID: s.NewID(), Text: "second"}
	s.AddPost(c, first)
	s.AddPost(c, second)

	// Newest post goes first
	assert.Equal(t, second.ID, c.Posts[0].ID)
	assert.Equal(t, first.ID, c.Posts[1].ID)

	owner, ok := s.CommunityForPost(second.ID)
	assert.True(t, ok)
	assert.Equal(t, c.ID, owner.ID)
}

func TestStoreCommentOrdering(t *testing.T) {
	s := NewStore(NewSequentialIDs())
	c := newCommunity(s, "test", nil)

	p := &models.Post{ID: s.NewID(), Text: "post"}
	s.AddPost(c, p)

	first := &models.Comment{ID: s.NewID(), Text: "first", PostID: p.ID}
	second := &models.Comment{ID: s.NewID(), Text: "second", PostID: p.ID}
	s.AddComment(p, first)
	s.AddComment(p, second)

	// Comments stay chronological
	assert.Equal(t, first.ID, p.Comments[0].ID)
	assert.Equal(t, second.ID, p.Comments[1].ID)

	parent, ok := s.PostForComment(second.ID)
	assert.True(t, ok)
	assert.Equal(t, p.ID, parent.ID)
}

func TestStoreChildOf(t *testing.T) {
	s := NewStore(NewSequentialIDs())
	parent := newCommunity(s, "parent", nil)

	_, ok := s.ChildOf(parent.ID)
	assert.False(t, ok)

	older := newCommunity(s, "older-child", &parent.ID)
	newCommunity(s, "younger-child", &parent.ID)

	child, ok := s.ChildOf(parent.ID)
	assert.True(t, ok)
	assert.Equal(t, older.ID, child.ID)
}

func TestStoreRequestLookups(t *testing.T) {
	s := NewStore(NewSequentialIDs())
	userID := s.NewID()
	communityID := s.NewID()

	rejected := &models.JoinRequest{
		ID:          s.NewID(),
		UserID:      userID,
		CommunityID: communityID,
		Status:      models.RequestRejected,
	}
	s.AddRequest(rejected)

	pending := &models.JoinRequest{
		ID:          s.NewID(),
		UserID:      userID,
		CommunityID: communityID,
		Status:      models.RequestPending,
	}
	s.AddRequest(pending)

	got, ok := s.PendingRequest(userID, communityID)
	assert.True(t, ok)
	assert.Equal(t, pending.ID, got.ID)

	latest, ok := s.LatestRequest(userID, communityID)
	assert.True(t, ok)
	assert.Equal(t, pending.ID, latest.ID)

	assert.Len(t, s.PendingRequests(), 1)
	assert.Len(t, s.RequestsForUser(userID), 2)
}

func TestNotificationLogOrdering(t *testing.T) {
	feed := NewNotificationLog(NewSequentialIDs())

	feed.Append("first")
	feed.Append("second")

	items := feed.List()
	assert.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Text)
	assert.Equal(t, "first", items[1].Text)
	assert.Equal(t, 2, feed.Count())
}

func TestSeedData(t *testing.T) {
	s := NewStore(NewSequentialIDs())
	s.Seed()

	assert.Equal(t, 3, s.CommunityCount())
	assert.Equal(t, 3, s.PostCount())
	assert.Len(t, s.Users(), 4)
	assert.Len(t, s.PendingRequests(), 2)

	// Root community comes first and children reference it
	communities := s.Communities()
	root := communities[0]
	assert.Nil(t, root.ParentID)
	for _, c := range communities[1:] {
		assert.NotNil(t, c.ParentID)
		assert.Equal(t, root.ID, *c.ParentID)
	}
}
