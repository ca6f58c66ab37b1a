package actors

import (
	stdctx "context"
	"log"
	"time"

	"campus-grove/internal/core"
	"campus-grove/internal/database"
	"campus-grove/internal/models"
	"campus-grove/internal/store"
	"campus-grove/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for community, membership, content and engagement operations
type (
	ListCommunitiesMsg struct{}

	GetCommunityMsg struct {
		CommunityID uuid.UUID
	}

	CreateCommunityMsg struct {
		Name      string
		ParentID  *uuid.UUID
		CreatorID uuid.UUID
	}

	JoinCommunityMsg struct {
		UserID      uuid.UUID
		CommunityID uuid.UUID
		// AsAdmin is an external authorization decision asserted by the
		// caller, never derived from the user record.
		AsAdmin bool
	}

	ApproveJoinRequestMsg struct {
		RequestID uuid.UUID
	}

	RejectJoinRequestMsg struct {
		RequestID uuid.UUID
	}

	ListJoinRequestsMsg struct{}

	GetJoinRequestStatusMsg struct {
		UserID      uuid.UUID
		CommunityID uuid.UUID
	}

	GetUserJoinRequestsMsg struct {
		UserID uuid.UUID
	}

	AutoJoinChildMsg struct {
		UserID   uuid.UUID
		ParentID uuid.UUID
	}

	CreatePostMsg struct {
		CommunityID uuid.UUID
		AuthorID    uuid.UUID
		Text        string
	}

	CreateCommentMsg struct {
		PostID   uuid.UUID
		AuthorID uuid.UUID
		Text     string
	}

	ToggleLikeMsg struct {
		Target   models.LikeTarget
		TargetID uuid.UUID
		UserID   uuid.UUID
	}

	VotePostMsg struct {
		CommunityID uuid.UUID
		PostID      uuid.UUID
		Delta       int
	}

	GetUserMsg struct {
		UserID uuid.UUID
	}

	GetJoinedCommunitiesMsg struct {
		UserID uuid.UUID
	}

	GetCountsMsg struct{}

	loadStateFromDBMsg struct{}
)

// RequestStatusResult reports the status of the most recent join request for
// a (user, community) pair. Exists is false when no request was ever filed.
type RequestStatusResult struct {
	Status models.JoinRequestStatus `json:"status,omitempty"`
	Exists bool                     `json:"exists"`
}

// CountsResult summarises store contents for the health endpoint.
type CountsResult struct {
	Communities int `json:"communities"`
	Posts       int `json:"posts"`
	Comments    int `json:"comments"`
}

// CommunityActor owns the entity store. Every read and write of users,
// communities, posts, comments and join requests goes through its mailbox,
// which is what makes multi-entity mutations atomic and snapshots
// consistent.
type CommunityActor struct {
	store      *store.Store
	membership *core.Membership
	content    *core.Content
	engagement *core.Engagement

	metrics     *utils.MetricsCollector
	notifierPID *actor.PID
	mongodb     *database.MongoDB
	context     actor.Context
}

func NewCommunityActor(s *store.Store, metrics *utils.MetricsCollector, notifierPID *actor.PID, mongodb *database.MongoDB) actor.Actor {
	a := &CommunityActor{
		store:       s,
		metrics:     metrics,
		notifierPID: notifierPID,
		mongodb:     mongodb,
	}
	a.membership = core.NewMembership(s, core.EmitterFunc(a.emit))
	a.content = core.NewContent(s)
	a.engagement = core.NewEngagement(s)
	return a
}

// emit forwards a notification text to the notifier, fire and forget.
func (a *CommunityActor) emit(text string) {
	if a.context != nil && a.notifierPID != nil {
		a.context.Send(a.notifierPID, &EmitMsg{Text: text})
	}
}

func (a *CommunityActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		a.context = context
		log.Printf("CommunityActor started")
		if a.mongodb != nil {
			context.Send(context.Self(), &loadStateFromDBMsg{})
		}

	case *actor.Stopping:
		log.Printf("CommunityActor stopping")

	case *actor.Stopped:
		log.Printf("CommunityActor stopped")

	case *actor.Restarting:
		log.Printf("CommunityActor restarting")

	case *loadStateFromDBMsg:
		if err := a.mongodb.LoadStore(stdctx.Background(), a.store); err != nil {
			log.Printf("CommunityActor: failed to load state from database: %v", err)
			return
		}
		log.Printf("CommunityActor: loaded %d communities from database", a.store.CommunityCount())

	case *ListCommunitiesMsg:
		a.handleListCommunities(context)

	case *GetCommunityMsg:
		a.handleGetCommunity(context, msg)

	case *CreateCommunityMsg:
		a.handleCreateCommunity(context, msg)

	case *JoinCommunityMsg:
		a.handleJoin(context, msg)

	case *ApproveJoinRequestMsg:
		a.handleApprove(context, msg)

	case *RejectJoinRequestMsg:
		a.handleReject(context, msg)

	case *ListJoinRequestsMsg:
		a.handleListRequests(context)

	case *GetJoinRequestStatusMsg:
		status, exists := a.membership.RequestStatus(msg.UserID, msg.CommunityID)
		context.Respond(&RequestStatusResult{Status: status, Exists: exists})

	case *GetUserJoinRequestsMsg:
		context.Respond(cloneRequests(a.membership.RequestsForUser(msg.UserID)))

	case *AutoJoinChildMsg:
		a.handleAutoJoin(context, msg)

	case *CreatePostMsg:
		a.handleCreatePost(context, msg)

	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)

	case *ToggleLikeMsg:
		a.handleToggleLike(context, msg)

	case *VotePostMsg:
		a.handleVote(context, msg)

	case *GetUserMsg:
		if u, ok := a.store.User(msg.UserID); ok {
			context.Respond(u.Clone())
		} else {
			context.Respond(utils.NewAppError(utils.ErrUserNotFound, "User not found: "+msg.UserID.String(), nil))
		}

	case *GetJoinedCommunitiesMsg:
		context.Respond(cloneCommunities(a.membership.JoinedCommunities(msg.UserID)))

	case *GetCountsMsg:
		context.Respond(&CountsResult{
			Communities: a.store.CommunityCount(),
			Posts:       a.store.PostCount(),
			Comments:    a.store.CommentCount(),
		})

	default:
		log.Printf("CommunityActor: Unknown message type: %T", msg)
	}
}

func (a *CommunityActor) handleListCommunities(context actor.Context) {
	context.Respond(cloneCommunities(a.store.Communities()))
}

func (a *CommunityActor) handleGetCommunity(context actor.Context, msg *GetCommunityMsg) {
	c, ok := a.store.Community(msg.CommunityID)
	if !ok {
		context.Respond(utils.NewCommunityNotFoundError(msg.CommunityID.String()))
		return
	}
	context.Respond(c.Clone())
}

func (a *CommunityActor) handleCreateCommunity(context actor.Context, msg *CreateCommunityMsg) {
	log.Printf("CommunityActor: Creating community: %s", msg.Name)
	startTime := time.Now()

	c, err := a.membership.CreateCommunity(msg.Name, msg.ParentID, msg.CreatorID)
	if err != nil {
		context.Respond(err)
		return
	}

	a.mirrorCommunity(c)
	a.metrics.AddOperationLatency("create_community", time.Since(startTime))
	context.Respond(c.Clone())
}

func (a *CommunityActor) handleJoin(context actor.Context, msg *JoinCommunityMsg) {
	startTime := time.Now()

	outcome, err := a.membership.Join(msg.UserID, msg.CommunityID, msg.AsAdmin)
	if err != nil {
		context.Respond(err)
		return
	}

	a.mirrorCommunity(outcome.Community)
	if outcome.Request != nil {
		a.mirrorRequest(outcome.Request)
	}

	a.metrics.AddOperationLatency("join_community", time.Since(startTime))
	log.Printf("CommunityActor: User %s -> community %s: %s", msg.UserID, msg.CommunityID, outcome.State)
	context.Respond(&core.JoinOutcome{
		State:     outcome.State,
		Community: outcome.Community.Clone(),
		Request:   outcome.Request.Clone(),
	})
}

func (a *CommunityActor) handleApprove(context actor.Context, msg *ApproveJoinRequestMsg) {
	startTime := time.Now()

	r, err := a.membership.ApproveRequest(msg.RequestID)
	if err != nil {
		context.Respond(err)
		return
	}

	a.mirrorRequest(r)
	if c, ok := a.store.Community(r.CommunityID); ok {
		a.mirrorCommunity(c)
	}

	a.metrics.AddOperationLatency("approve_request", time.Since(startTime))
	context.Respond(r.Clone())
}

func (a *CommunityActor) handleReject(context actor.Context, msg *RejectJoinRequestMsg) {
	r, err := a.membership.RejectRequest(msg.RequestID)
	if err != nil {
		context.Respond(err)
		return
	}
	a.mirrorRequest(r)
	context.Respond(r.Clone())
}

func (a *CommunityActor) handleListRequests(context actor.Context) {
	context.Respond(cloneRequests(a.membership.PendingRequests()))
}

func (a *CommunityActor) handleAutoJoin(context actor.Context, msg *AutoJoinChildMsg) {
	child, err := a.membership.AutoJoinChild(msg.UserID, msg.ParentID)
	if err != nil {
		context.Respond(err)
		return
	}
	if child != nil {
		a.mirrorCommunity(child)
	}
	context.Respond(child.Clone())
}

func (a *CommunityActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()

	p, err := a.content.CreatePost(msg.CommunityID, msg.AuthorID, msg.Text)
	if err != nil {
		context.Respond(err)
		return
	}

	log.Printf("CommunityActor: Created post %s in community %s", p.ID, msg.CommunityID)
	a.mirrorPost(msg.CommunityID, p)
	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	context.Respond(p.Clone())
}

func (a *CommunityActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	startTime := time.Now()

	cm, err := a.content.CreateComment(msg.PostID, msg.AuthorID, msg.Text)
	if err != nil {
		context.Respond(err)
		return
	}

	a.mirrorComment(cm)
	a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
	context.Respond(cm.Clone())
}

func (a *CommunityActor) handleToggleLike(context actor.Context, msg *ToggleLikeMsg) {
	startTime := time.Now()

	liked, err := a.engagement.ToggleLike(msg.Target, msg.TargetID, msg.UserID)
	if err != nil {
		context.Respond(err)
		return
	}

	switch msg.Target {
	case models.PostTarget:
		if c, ok := a.store.CommunityForPost(msg.TargetID); ok {
			if p, ok := a.store.Post(msg.TargetID); ok {
				a.mirrorPost(c.ID, p)
			}
		}
	case models.CommentTarget:
		if cm, ok := a.store.Comment(msg.TargetID); ok {
			a.mirrorComment(cm)
		}
	}

	a.metrics.AddOperationLatency("toggle_like", time.Since(startTime))
	context.Respond(liked)
}

func (a *CommunityActor) handleVote(context actor.Context, msg *VotePostMsg) {
	startTime := time.Now()

	p, err := a.engagement.Vote(msg.CommunityID, msg.PostID, msg.Delta)
	if err != nil {
		context.Respond(err)
		return
	}

	a.mirrorPost(msg.CommunityID, p)
	if author, ok := a.store.User(p.AuthorID); ok {
		a.mirrorUser(author)
	}

	a.metrics.AddOperationLatency("vote_post", time.Since(startTime))
	context.Respond(p.Clone())
}

// Best-effort persistence mirroring. Failures are logged and swallowed; the
// in-memory store stays authoritative.

func (a *CommunityActor) mirrorCommunity(c *models.Community) {
	if a.mongodb == nil || c == nil {
		return
	}
	if err := a.mongodb.SaveCommunity(stdctx.Background(), c); err != nil {
		log.Printf("CommunityActor: failed to mirror community %s: %v", c.ID, err)
	}
}

func (a *CommunityActor) mirrorPost(communityID uuid.UUID, p *models.Post) {
	if a.mongodb == nil || p == nil {
		return
	}
	if err := a.mongodb.SavePost(stdctx.Background(), communityID, p); err != nil {
		log.Printf("CommunityActor: failed to mirror post %s: %v", p.ID, err)
	}
}

func (a *CommunityActor) mirrorComment(cm *models.Comment) {
	if a.mongodb == nil || cm == nil {
		return
	}
	if err := a.mongodb.SaveComment(stdctx.Background(), cm); err != nil {
		log.Printf("CommunityActor: failed to mirror comment %s: %v", cm.ID, err)
	}
}

func (a *CommunityActor) mirrorRequest(r *models.JoinRequest) {
	if a.mongodb == nil || r == nil {
		return
	}
	if err := a.mongodb.SaveJoinRequest(stdctx.Background(), r); err != nil {
		log.Printf("CommunityActor: failed to mirror join request %s: %v", r.ID, err)
	}
}

func (a *CommunityActor) mirrorUser(u *models.User) {
	if a.mongodb == nil || u == nil {
		return
	}
	if err := a.mongodb.SaveUser(stdctx.Background(), u); err != nil {
		log.Printf("CommunityActor: failed to mirror user %s: %v", u.ID, err)
	}
}

func cloneCommunities(communities []*models.Community) []*models.Community {
	out := make([]*models.Community, len(communities))
	for i, c := range communities {
		out[i] = c.Clone()
	}
	return out
}

func cloneRequests(requests []*models.JoinRequest) []*models.JoinRequest {
	out := make([]*models.JoinRequest, len(requests))
	for i, r := range requests {
		out[i] = r.Clone()
	}
	return out
}
