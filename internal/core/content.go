package core

import (
	"strings"
	"time"

	"campus-grove/internal/models"
	"campus-grove/internal/store"
	"campus-grove/internal/utils"

	"github.com/google/uuid"
)

// Content creates posts and comments and attaches them to their owners.
type Content struct {
	store *store.Store
}

func NewContent(s *store.Store) *Content {
	return &Content{store: s}
}

// CreatePost adds a new post to the community, newest first, with zeroed
// counters.
func (ct *Content) CreatePost(communityID, userID uuid.UUID, text string) (*models.Post, error) {
	c, ok := ct.store.Community(communityID)
	if !ok {
		return nil, utils.NewCommunityNotFoundError(communityID.String())
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.NewValidationError("post text is required")
	}

	p := &models.Post{
		ID:        ct.store.NewID(),
		Text:      text,
		AuthorID:  userID,
		CreatedAt: time.Now(),
		Comments:  make([]*models.Comment, 0),
		LikedBy:   make(map[uuid.UUID]bool),
	}
	ct.store.AddPost(c, p)
	return p, nil
}

// CreateComment appends a new comment to the post, in chronological order.
// The owning community is resolved through the store's ownership index.
func (ct *Content) CreateComment(postID, userID uuid.UUID, text string) (*models.Comment, error) {
	if _, ok := ct.store.CommunityForPost(postID); !ok {
		return nil, utils.NewPostNotFoundError(postID.String())
	}
	p, ok := ct.store.Post(postID)
	if !ok {
		return nil, utils.NewPostNotFoundError(postID.String())
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.NewValidationError("comment text is required")
	}

	cm := &models.Comment{
		ID:        ct.store.NewID(),
		Text:      text,
		AuthorID:  userID,
		PostID:    postID,
		CreatedAt: time.Now(),
		LikedBy:   make(map[uuid.UUID]bool),
	}
	ct.store.AddComment(p, cm)
	return cm, nil
}
