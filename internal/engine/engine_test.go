package engine

import (
	"testing"
	"time"

	"campus-grove/internal/models"
	"campus-grove/internal/store"
	"campus-grove/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	system := actor.NewActorSystem()
	metrics := utils.NewMetricsCollector()
	ids := store.NewSequentialIDs()
	s := store.NewStore(ids)
	feed := store.NewNotificationLog(ids)
	return NewEngine(system, metrics, s, feed, nil)
}

// hasNotification polls the feed until the text shows up; emission is
// fire-and-forget so it may trail the operation that triggered it.
func hasNotification(e *Engine, text string) func() bool {
	return func() bool {
		items, err := e.ListNotifications()
		if err != nil {
			return false
		}
		for _, n := range items {
			if n.Text == text {
				return true
			}
		}
		return false
	}
}

func TestEngineMembershipLifecycle(t *testing.T) {
	e := newTestEngine(t)
	creatorID := uuid.New()
	userID := uuid.New()

	community, err := e.CreateCommunity("Chess Club", nil, creatorID)
	require.NoError(t, err)
	assert.True(t, community.Members[creatorID])
	assert.Eventually(t, hasNotification(e, "New community created: Chess Club"),
		2*time.Second, 10*time.Millisecond)

	// Plain join goes through a pending request
	outcome, err := e.Join(userID, community.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.PendingRequest, outcome.State)
	require.NotNil(t, outcome.Request)
	assert.Eventually(t, hasNotification(e, "Join request for Chess Club"),
		2*time.Second, 10*time.Millisecond)

	pending, err := e.ListJoinRequests()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := e.ApproveJoinRequest(outcome.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, approved.Status)
	assert.Eventually(t, hasNotification(e, "Approved to join Chess Club"),
		2*time.Second, 10*time.Millisecond)

	status, exists, err := e.GetJoinRequestStatus(userID, community.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, models.RequestApproved, status)

	joined, err := e.JoinedCommunities(userID)
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, community.ID, joined[0].ID)

	// The pending queue drained
	pending, err = e.ListJoinRequests()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestEngineAdminJoinAndAutoJoin(t *testing.T) {
	e := newTestEngine(t)
	creatorID := uuid.New()
	userID := uuid.New()

	root, err := e.CreateCommunity("Root", nil, creatorID)
	require.NoError(t, err)
	child, err := e.CreateCommunity("Child", &root.ID, creatorID)
	require.NoError(t, err)

	outcome, err := e.Join(userID, root.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.Member, outcome.State)
	assert.Eventually(t, hasNotification(e, "Joined Root"),
		2*time.Second, 10*time.Millisecond)

	got, err := e.AutoJoinChild(userID, root.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, child.ID, got.ID)
	assert.Eventually(t, hasNotification(e, "Auto-joined Child"),
		2*time.Second, 10*time.Millisecond)

	// No grandchildren, so auto-join from the child finds nothing
	got, err = e.AutoJoinChild(userID, child.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEngineContentFlow(t *testing.T) {
	e := newTestEngine(t)
	authorID := uuid.New()

	community, err := e.CreateCommunity("Chess Club", nil, authorID)
	require.NoError(t, err)

	post, err := e.CreatePost(community.ID, authorID, "First post")
	require.NoError(t, err)

	comment, err := e.AddComment(post.ID, authorID, "A comment")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)

	liked, err := e.LikePost(post.ID, authorID)
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = e.LikePost(post.ID, authorID)
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = e.LikeComment(comment.ID, authorID)
	require.NoError(t, err)
	assert.True(t, liked)

	voted, err := e.VotePost(community.ID, post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, voted.UpVotes)

	counts, err := e.Counts()
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Communities)
	assert.Equal(t, 1, counts.Posts)
	assert.Equal(t, 1, counts.Comments)
}

func TestEngineErrorMapping(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.GetCommunity(uuid.New())
	assert.True(t, utils.IsErrorCode(err, utils.ErrCommunityNotFound))

	_, err = e.CreatePost(uuid.New(), uuid.New(), "text")
	assert.True(t, utils.IsErrorCode(err, utils.ErrCommunityNotFound))

	_, err = e.ApproveJoinRequest(uuid.New())
	assert.True(t, utils.IsErrorCode(err, utils.ErrRequestNotFound))

	_, err = e.GetUser(uuid.New())
	assert.True(t, utils.IsErrorCode(err, utils.ErrUserNotFound))
}
