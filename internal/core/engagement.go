package core

import (
	"campus-grove/internal/models"
	"campus-grove/internal/store"
	"campus-grove/internal/utils"

	"github.com/google/uuid"
)

// Engagement toggles likes and applies vote clicks, keeping the count
// invariants and the author impact side effect together in one place.
type Engagement struct {
	store *store.Store
}

func NewEngagement(s *store.Store) *Engagement {
	return &Engagement{store: s}
}

// ToggleLike flips the user's membership in the target's likedBy set and
// returns whether the target is liked afterwards. For posts the like also
// moves the upvote counter; comments carry no vote counters.
func (e *Engagement) ToggleLike(target models.LikeTarget, targetID, userID uuid.UUID) (bool, error) {
	switch target {
	case models.PostTarget:
		p, ok := e.store.Post(targetID)
		if !ok {
			return false, utils.NewPostNotFoundError(targetID.String())
		}
		if p.LikedBy[userID] {
			delete(p.LikedBy, userID)
			if p.UpVotes > 0 {
				p.UpVotes--
			}
			return false, nil
		}
		p.LikedBy[userID] = true
		p.UpVotes++
		return true, nil

	case models.CommentTarget:
		cm, ok := e.store.Comment(targetID)
		if !ok {
			return false, utils.NewAppError(utils.ErrCommentNotFound,
				"Comment not found: "+targetID.String(), nil)
		}
		if cm.LikedBy[userID] {
			delete(cm.LikedBy, userID)
			return false, nil
		}
		cm.LikedBy[userID] = true
		return true, nil

	default:
		return false, utils.NewValidationError("unknown like target: " + string(target))
	}
}

// Vote records a single vote click on a post. A positive delta counts as one
// upvote, anything else as one downvote. The author's impact moves by the
// unit delta, clamped at zero; a dangling author id is tolerated and leaves
// impact untouched.
func (e *Engagement) Vote(communityID, postID uuid.UUID, delta int) (*models.Post, error) {
	if _, ok := e.store.Community(communityID); !ok {
		return nil, utils.NewCommunityNotFoundError(communityID.String())
	}

	owner, ok := e.store.CommunityForPost(postID)
	if !ok || owner.ID != communityID {
		return nil, utils.NewPostNotFoundError(postID.String())
	}
	p, _ := e.store.Post(postID)

	unit := -1
	if delta > 0 {
		unit = 1
	}
	if unit > 0 {
		p.UpVotes++
	} else {
		p.DownVotes++
	}

	if author, ok := e.store.User(p.AuthorID); ok {
		author.Impact += unit
		if author.Impact < 0 {
			author.Impact = 0
		}
	}
	return p, nil
}
