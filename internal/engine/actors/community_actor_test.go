package actors

import (
	"testing"
	"time"

	"campus-grove/internal/core"
	"campus-grove/internal/models"
	"campus-grove/internal/store"
	"campus-grove/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnCommunityActor(t *testing.T) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	s := store.NewStore(store.NewSequentialIDs())
	metrics := utils.NewMetricsCollector()

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewCommunityActor(s, metrics, nil, nil)
	})
	return system, system.Root.Spawn(props)
}

func ask(t *testing.T, system *actor.ActorSystem, pid *actor.PID, msg interface{}) interface{} {
	t.Helper()
	future := system.Root.RequestFuture(pid, msg, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)
	return result
}

func TestCommunityActorMembershipFlow(t *testing.T) {
	system, pid := spawnCommunityActor(t)
	creatorID := uuid.New()
	userID := uuid.New()

	// Create a community
	result := ask(t, system, pid, &CreateCommunityMsg{Name: "Chess Club", CreatorID: creatorID})
	community, ok := result.(*models.Community)
	require.True(t, ok, "unexpected response: %#v", result)
	assert.Equal(t, "Chess Club", community.Name)
	assert.True(t, community.Members[creatorID])

	// A plain join opens a pending request
	result = ask(t, system, pid, &JoinCommunityMsg{UserID: userID, CommunityID: community.ID})
	outcome, ok := result.(*core.JoinOutcome)
	require.True(t, ok, "unexpected response: %#v", result)
	assert.Equal(t, models.PendingRequest, outcome.State)
	require.NotNil(t, outcome.Request)

	// Status reflects the pending request
	result = ask(t, system, pid, &GetJoinRequestStatusMsg{UserID: userID, CommunityID: community.ID})
	status := result.(*RequestStatusResult)
	assert.True(t, status.Exists)
	assert.Equal(t, models.RequestPending, status.Status)

	// Approval promotes the user to member
	result = ask(t, system, pid, &ApproveJoinRequestMsg{RequestID: outcome.Request.ID})
	request, ok := result.(*models.JoinRequest)
	require.True(t, ok, "unexpected response: %#v", result)
	assert.Equal(t, models.RequestApproved, request.Status)

	result = ask(t, system, pid, &GetJoinedCommunitiesMsg{UserID: userID})
	joined := result.([]*models.Community)
	require.Len(t, joined, 1)
	assert.Equal(t, community.ID, joined[0].ID)
}

func TestCommunityActorContentAndEngagement(t *testing.T) {
	system, pid := spawnCommunityActor(t)
	authorID := uuid.New()

	result := ask(t, system, pid, &CreateCommunityMsg{Name: "Chess Club", CreatorID: authorID})
	community := result.(*models.Community)

	result = ask(t, system, pid, &CreatePostMsg{CommunityID: community.ID, AuthorID: authorID, Text: "First post"})
	post, ok := result.(*models.Post)
	require.True(t, ok, "unexpected response: %#v", result)
	assert.Equal(t, "First post", post.Text)
	assert.Zero(t, post.UpVotes)

	result = ask(t, system, pid, &CreateCommentMsg{PostID: post.ID, AuthorID: authorID, Text: "A comment"})
	comment, ok := result.(*models.Comment)
	require.True(t, ok, "unexpected response: %#v", result)
	assert.Equal(t, post.ID, comment.PostID)

	// Like toggles on and off
	result = ask(t, system, pid, &ToggleLikeMsg{Target: models.PostTarget, TargetID: post.ID, UserID: authorID})
	assert.Equal(t, true, result)
	result = ask(t, system, pid, &ToggleLikeMsg{Target: models.PostTarget, TargetID: post.ID, UserID: authorID})
	assert.Equal(t, false, result)

	result = ask(t, system, pid, &ToggleLikeMsg{Target: models.CommentTarget, TargetID: comment.ID, UserID: authorID})
	assert.Equal(t, true, result)

	// Votes land on the post counters
	result = ask(t, system, pid, &VotePostMsg{CommunityID: community.ID, PostID: post.ID, Delta: 1})
	voted, ok := result.(*models.Post)
	require.True(t, ok, "unexpected response: %#v", result)
	assert.Equal(t, 1, voted.UpVotes)

	result = ask(t, system, pid, &GetCountsMsg{})
	counts := result.(*CountsResult)
	assert.Equal(t, 1, counts.Communities)
	assert.Equal(t, 1, counts.Posts)
	assert.Equal(t, 1, counts.Comments)
}

func TestCommunityActorErrorResponses(t *testing.T) {
	system, pid := spawnCommunityActor(t)

	result := ask(t, system, pid, &JoinCommunityMsg{UserID: uuid.New(), CommunityID: uuid.New()})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "unexpected response: %#v", result)
	assert.Equal(t, utils.ErrCommunityNotFound, appErr.Code)

	result = ask(t, system, pid, &GetUserMsg{UserID: uuid.New()})
	appErr, ok = result.(*utils.AppError)
	require.True(t, ok, "unexpected response: %#v", result)
	assert.Equal(t, utils.ErrUserNotFound, appErr.Code)
}

func TestCommunityActorSnapshotsAreIsolated(t *testing.T) {
	system, pid := spawnCommunityActor(t)
	creatorID := uuid.New()

	result := ask(t, system, pid, &CreateCommunityMsg{Name: "Chess Club", CreatorID: creatorID})
	community := result.(*models.Community)

	// Mutating the response must not leak into actor state
	community.Name = "Hijacked"
	community.Members[uuid.New()] = true

	result = ask(t, system, pid, &GetCommunityMsg{CommunityID: community.ID})
	fresh := result.(*models.Community)
	assert.Equal(t, "Chess Club", fresh.Name)
	assert.Len(t, fresh.Members, 1)
}

func TestNotificationActorFeed(t *testing.T) {
	system := actor.NewActorSystem()
	feed := store.NewNotificationLog(store.NewSequentialIDs())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewNotificationActor(feed, nil)
	})
	pid := system.Root.Spawn(props)

	system.Root.Send(pid, &EmitMsg{Text: "first"})
	system.Root.Send(pid, &EmitMsg{Text: "second"})

	future := system.Root.RequestFuture(pid, &ListNotificationsMsg{}, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)

	items := result.([]*models.Notification)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Text)
	assert.Equal(t, "first", items[1].Text)
}
