package engine

import (
	"time"

	"campus-grove/internal/core"
	"campus-grove/internal/database"
	"campus-grove/internal/engine/actors"
	"campus-grove/internal/models"
	"campus-grove/internal/store"
	"campus-grove/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Engine is the facade the presentation layer calls. It spawns the community
// actor (the store owner) and the notification actor and turns actor futures
// into plain (result, error) returns. Every call completes within the
// request timeout or fails with an ACTOR_TIMEOUT error.
type Engine struct {
	context      *actor.RootContext
	communityPID *actor.PID
	notifierPID  *actor.PID
	timeout      time.Duration
}

func NewEngine(system *actor.ActorSystem, metrics *utils.MetricsCollector, s *store.Store, feed *store.NotificationLog, mongodb *database.MongoDB) *Engine {
	context := system.Root

	notifierProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewNotificationActor(feed, mongodb)
	})
	notifierPID := context.Spawn(notifierProps)

	communityProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommunityActor(s, metrics, notifierPID, mongodb)
	})
	communityPID := context.Spawn(communityProps)

	return &Engine{
		context:      context,
		communityPID: communityPID,
		notifierPID:  notifierPID,
		timeout:      5 * time.Second,
	}
}

// GetCommunityActor returns the PID of the community actor.
func (e *Engine) GetCommunityActor() *actor.PID {
	return e.communityPID
}

// GetNotificationActor returns the PID of the notification actor.
func (e *Engine) GetNotificationActor() *actor.PID {
	return e.notifierPID
}

func (e *Engine) request(target *actor.PID, msg interface{}, name string) (interface{}, error) {
	future := e.context.RequestFuture(target, msg, e.timeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewActorTimeoutError(name)
	}
	if appErr, ok := result.(*utils.AppError); ok {
		return nil, appErr
	}
	return result, nil
}

func (e *Engine) ask(msg interface{}) (interface{}, error) {
	return e.request(e.communityPID, msg, "community")
}

func (e *Engine) ListCommunities() ([]*models.Community, error) {
	result, err := e.ask(&actors.ListCommunitiesMsg{})
	if err != nil {
		return nil, err
	}
	return result.([]*models.Community), nil
}

func (e *Engine) GetCommunity(communityID uuid.UUID) (*models.Community, error) {
	result, err := e.ask(&actors.GetCommunityMsg{CommunityID: communityID})
	if err != nil {
		return nil, err
	}
	return result.(*models.Community), nil
}

func (e *Engine) CreateCommunity(name string, parentID *uuid.UUID, creatorID uuid.UUID) (*models.Community, error) {
	result, err := e.ask(&actors.CreateCommunityMsg{Name: name, ParentID: parentID, CreatorID: creatorID})
	if err != nil {
		return nil, err
	}
	return result.(*models.Community), nil
}

func (e *Engine) Join(userID, communityID uuid.UUID, asAdmin bool) (*core.JoinOutcome, error) {
	result, err := e.ask(&actors.JoinCommunityMsg{UserID: userID, CommunityID: communityID, AsAdmin: asAdmin})
	if err != nil {
		return nil, err
	}
	return result.(*core.JoinOutcome), nil
}

func (e *Engine) ApproveJoinRequest(requestID uuid.UUID) (*models.JoinRequest, error) {
	result, err := e.ask(&actors.ApproveJoinRequestMsg{RequestID: requestID})
	if err != nil {
		return nil, err
	}
	return result.(*models.JoinRequest), nil
}

func (e *Engine) RejectJoinRequest(requestID uuid.UUID) (*models.JoinRequest, error) {
	result, err := e.ask(&actors.RejectJoinRequestMsg{RequestID: requestID})
	if err != nil {
		return nil, err
	}
	return result.(*models.JoinRequest), nil
}

// ListJoinRequests returns the pending requests only, in creation order.
func (e *Engine) ListJoinRequests() ([]*models.JoinRequest, error) {
	result, err := e.ask(&actors.ListJoinRequestsMsg{})
	if err != nil {
		return nil, err
	}
	return result.([]*models.JoinRequest), nil
}

// GetJoinRequestStatus returns the status of the most recent request for the
// pair. The bool reports whether any request exists.
func (e *Engine) GetJoinRequestStatus(userID, communityID uuid.UUID) (models.JoinRequestStatus, bool, error) {
	result, err := e.ask(&actors.GetJoinRequestStatusMsg{UserID: userID, CommunityID: communityID})
	if err != nil {
		return "", false, err
	}
	status := result.(*actors.RequestStatusResult)
	return status.Status, status.Exists, nil
}

func (e *Engine) UserJoinRequests(userID uuid.UUID) ([]*models.JoinRequest, error) {
	result, err := e.ask(&actors.GetUserJoinRequestsMsg{UserID: userID})
	if err != nil {
		return nil, err
	}
	return result.([]*models.JoinRequest), nil
}

func (e *Engine) CreatePost(communityID, authorID uuid.UUID, text string) (*models.Post, error) {
	result, err := e.ask(&actors.CreatePostMsg{CommunityID: communityID, AuthorID: authorID, Text: text})
	if err != nil {
		return nil, err
	}
	return result.(*models.Post), nil
}

func (e *Engine) AddComment(postID, authorID uuid.UUID, text string) (*models.Comment, error) {
	result, err := e.ask(&actors.CreateCommentMsg{PostID: postID, AuthorID: authorID, Text: text})
	if err != nil {
		return nil, err
	}
	return result.(*models.Comment), nil
}

// LikePost toggles the user's like on a post and reports whether the post is
// liked afterwards.
func (e *Engine) LikePost(postID, userID uuid.UUID) (bool, error) {
	result, err := e.ask(&actors.ToggleLikeMsg{Target: models.PostTarget, TargetID: postID, UserID: userID})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

// LikeComment toggles the user's like on a comment.
func (e *Engine) LikeComment(commentID, userID uuid.UUID) (bool, error) {
	result, err := e.ask(&actors.ToggleLikeMsg{Target: models.CommentTarget, TargetID: commentID, UserID: userID})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func (e *Engine) VotePost(communityID, postID uuid.UUID, delta int) (*models.Post, error) {
	result, err := e.ask(&actors.VotePostMsg{CommunityID: communityID, PostID: postID, Delta: delta})
	if err != nil {
		return nil, err
	}
	return result.(*models.Post), nil
}

// AutoJoinChild adds the user to the first direct child of the community.
// Returns nil when the community has no child.
func (e *Engine) AutoJoinChild(userID, parentID uuid.UUID) (*models.Community, error) {
	result, err := e.ask(&actors.AutoJoinChildMsg{UserID: userID, ParentID: parentID})
	if err != nil {
		return nil, err
	}
	return result.(*models.Community), nil
}

func (e *Engine) ListNotifications() ([]*models.Notification, error) {
	result, err := e.request(e.notifierPID, &actors.ListNotificationsMsg{}, "notification")
	if err != nil {
		return nil, err
	}
	return result.([]*models.Notification), nil
}

func (e *Engine) GetUser(userID uuid.UUID) (*models.User, error) {
	result, err := e.ask(&actors.GetUserMsg{UserID: userID})
	if err != nil {
		return nil, err
	}
	return result.(*models.User), nil
}

func (e *Engine) JoinedCommunities(userID uuid.UUID) ([]*models.Community, error) {
	result, err := e.ask(&actors.GetJoinedCommunitiesMsg{UserID: userID})
	if err != nil {
		return nil, err
	}
	return result.([]*models.Community), nil
}

func (e *Engine) Counts() (*actors.CountsResult, error) {
	result, err := e.ask(&actors.GetCountsMsg{})
	if err != nil {
		return nil, err
	}
	return result.(*actors.CountsResult), nil
}

func (e *Engine) NotificationCount() (int, error) {
	result, err := e.request(e.notifierPID, &actors.GetCountsMsg{}, "notification")
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}
