package core

import (
	"testing"

	"campus-grove/internal/models"
	"campus-grove/internal/store"
	"campus-grove/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEmitter captures emitted notification texts for assertions.
type recordingEmitter struct {
	texts []string
}

func (r *recordingEmitter) Emit(text string) {
	r.texts = append(r.texts, text)
}

func newMembershipFixture(t *testing.T) (*store.Store, *Membership, *recordingEmitter) {
	t.Helper()
	s := store.NewStore(store.NewSequentialIDs())
	emitter := &recordingEmitter{}
	return s, NewMembership(s, emitter), emitter
}

func TestCreateCommunity(t *testing.T) {
	_, m, emitter := newMembershipFixture(t)
	creatorID := uuid.New()

	c, err := m.CreateCommunity("Robotics Club", nil, creatorID)
	require.NoError(t, err)
	assert.Equal(t, "Robotics Club", c.Name)
	assert.Nil(t, c.ParentID)
	assert.True(t, c.IsMember(creatorID))
	assert.Len(t, c.Members, 1)
	assert.Equal(t, []string{"New community created: Robotics Club"}, emitter.texts)
}

func TestCreateCommunityValidation(t *testing.T) {
	_, m, _ := newMembershipFixture(t)

	_, err := m.CreateCommunity("   ", nil, uuid.New())
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))

	missing := uuid.New()
	_, err = m.CreateCommunity("Orphan", &missing, uuid.New())
	assert.True(t, utils.IsErrorCode(err, utils.ErrCommunityNotFound))
}

func TestCreateCommunitySingleLevelNesting(t *testing.T) {
	_, m, _ := newMembershipFixture(t)
	creatorID := uuid.New()

	root, err := m.CreateCommunity("Root", nil, creatorID)
	require.NoError(t, err)

	child, err := m.CreateCommunity("Child", &root.ID, creatorID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	// A child cannot itself become a parent
	_, err = m.CreateCommunity("Grandchild", &child.ID, creatorID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrConflict))
}

func TestJoinAsAdmin(t *testing.T) {
	_, m, emitter := newMembershipFixture(t)
	userID := uuid.New()

	c, err := m.CreateCommunity("Chess Club", nil, uuid.New())
	require.NoError(t, err)

	outcome, err := m.Join(userID, c.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.Member, outcome.State)
	assert.True(t, c.IsMember(userID))
	assert.Contains(t, emitter.texts, "Joined Chess Club")
}

func TestJoinOpensPendingRequest(t *testing.T) {
	_, m, emitter := newMembershipFixture(t)
	userID := uuid.New()

	c, err := m.CreateCommunity("Chess Club", nil, uuid.New())
	require.NoError(t, err)

	outcome, err := m.Join(userID, c.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.PendingRequest, outcome.State)
	require.NotNil(t, outcome.Request)
	assert.Equal(t, models.RequestPending, outcome.Request.Status)
	assert.False(t, c.IsMember(userID))
	assert.Contains(t, emitter.texts, "Join request for Chess Club")

	// Repeat join returns the same pending request, no duplicate
	again, err := m.Join(userID, c.ID, false)
	require.NoError(t, err)
	assert.Equal(t, outcome.Request.ID, again.Request.ID)
	assert.Len(t, m.PendingRequests(), 1)
}

func TestJoinExistingMemberIsNoOp(t *testing.T) {
	_, m, emitter := newMembershipFixture(t)
	creatorID := uuid.New()

	c, err := m.CreateCommunity("Chess Club", nil, creatorID)
	require.NoError(t, err)
	emitted := len(emitter.texts)

	outcome, err := m.Join(creatorID, c.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.Member, outcome.State)
	assert.Nil(t, outcome.Request)
	assert.Len(t, emitter.texts, emitted)
}

func TestJoinUnknownCommunity(t *testing.T) {
	_, m, _ := newMembershipFixture(t)

	_, err := m.Join(uuid.New(), uuid.New(), false)
	assert.True(t, utils.IsErrorCode(err, utils.ErrCommunityNotFound))
}

func TestApproveRequest(t *testing.T) {
	_, m, emitter := newMembershipFixture(t)
	userID := uuid.New()

	c, err := m.CreateCommunity("Chess Club", nil, uuid.New())
	require.NoError(t, err)

	outcome, err := m.Join(userID, c.ID, false)
	require.NoError(t, err)

	r, err := m.ApproveRequest(outcome.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, r.Status)
	assert.True(t, c.IsMember(userID))
	assert.Contains(t, emitter.texts, "Approved to join Chess Club")

	status, exists := m.RequestStatus(userID, c.ID)
	assert.True(t, exists)
	assert.Equal(t, models.RequestApproved, status)

	// Double approve is a no-op
	emitted := len(emitter.texts)
	r2, err := m.ApproveRequest(outcome.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, r2.Status)
	assert.Len(t, emitter.texts, emitted)
}

func TestRejectRequestNotSticky(t *testing.T) {
	_, m, _ := newMembershipFixture(t)
	userID := uuid.New()

	c, err := m.CreateCommunity("Chess Club", nil, uuid.New())
	require.NoError(t, err)

	outcome, err := m.Join(userID, c.ID, false)
	require.NoError(t, err)

	r, err := m.RejectRequest(outcome.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, r.Status)
	assert.False(t, c.IsMember(userID))

	// A rejected user may ask again with a fresh request
	again, err := m.Join(userID, c.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.PendingRequest, again.State)
	assert.NotEqual(t, outcome.Request.ID, again.Request.ID)

	// Rejecting the approved request later changes nothing
	_, err = m.ApproveRequest(again.Request.ID)
	require.NoError(t, err)
	r2, err := m.RejectRequest(again.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, r2.Status)
}

func TestApproveUnknownRequest(t *testing.T) {
	_, m, _ := newMembershipFixture(t)

	_, err := m.ApproveRequest(uuid.New())
	assert.True(t, utils.IsErrorCode(err, utils.ErrRequestNotFound))

	_, err = m.RejectRequest(uuid.New())
	assert.True(t, utils.IsErrorCode(err, utils.ErrRequestNotFound))
}

func TestAutoJoinChild(t *testing.T) {
	_, m, emitter := newMembershipFixture(t)
	creatorID := uuid.New()
	userID := uuid.New()

	root, err := m.CreateCommunity("Root", nil, creatorID)
	require.NoError(t, err)

	// No children yet
	child, err := m.AutoJoinChild(userID, root.ID)
	require.NoError(t, err)
	assert.Nil(t, child)

	older, err := m.CreateCommunity("Older", &root.ID, creatorID)
	require.NoError(t, err)
	_, err = m.CreateCommunity("Younger", &root.ID, creatorID)
	require.NoError(t, err)

	child, err = m.AutoJoinChild(userID, root.ID)
	require.NoError(t, err)
	require.NotNil(t, child)
	assert.Equal(t, older.ID, child.ID)
	assert.True(t, child.IsMember(userID))
	assert.Contains(t, emitter.texts, "Auto-joined Older")

	// Repeating is a no-op, no second notification
	emitted := len(emitter.texts)
	child, err = m.AutoJoinChild(userID, root.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, child.ID)
	assert.Len(t, emitter.texts, emitted)
}

func TestJoinedCommunities(t *testing.T) {
	_, m, _ := newMembershipFixture(t)
	userID := uuid.New()

	first, err := m.CreateCommunity("First", nil, userID)
	require.NoError(t, err)
	second, err := m.CreateCommunity("Second", nil, uuid.New())
	require.NoError(t, err)
	_, err = m.Join(userID, second.ID, true)
	require.NoError(t, err)
	_, err = m.CreateCommunity("Third", nil, uuid.New())
	require.NoError(t, err)

	joined := m.JoinedCommunities(userID)
	require.Len(t, joined, 2)
	assert.Equal(t, first.ID, joined[0].ID)
	assert.Equal(t, second.ID, joined[1].ID)
}

func TestRequestsForUser(t *testing.T) {
	_, m, _ := newMembershipFixture(t)
	userID := uuid.New()

	first, err := m.CreateCommunity("First", nil, uuid.New())
	require.NoError(t, err)
	second, err := m.CreateCommunity("Second", nil, uuid.New())
	require.NoError(t, err)

	_, err = m.Join(userID, first.ID, false)
	require.NoError(t, err)
	_, err = m.Join(userID, second.ID, false)
	require.NoError(t, err)
	_, err = m.Join(uuid.New(), first.ID, false)
	require.NoError(t, err)

	assert.Len(t, m.RequestsForUser(userID), 2)
	assert.Len(t, m.PendingRequests(), 3)
}
