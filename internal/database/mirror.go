package database

import (
	"context"
	"fmt"
	"sort"
	"time"

	"campus-grove/internal/models"
	"campus-grove/internal/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Document shapes stored in MongoDB. Ids are stored as strings so the
// collections stay readable from the shell.

type UserDB struct {
	ID     string   `bson:"_id"`
	Name   string   `bson:"name"`
	Impact int      `bson:"impact"`
	Badges []string `bson:"badges"`
}

type CommunityDB struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	ParentID  *string   `bson:"parentId,omitempty"`
	Members   []string  `bson:"members"`
	CreatedAt time.Time `bson:"createdAt"`
}

type PostDB struct {
	ID          string    `bson:"_id"`
	CommunityID string    `bson:"communityId"`
	Text        string    `bson:"text"`
	AuthorID    string    `bson:"authorId"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpVotes     int       `bson:"upVotes"`
	DownVotes   int       `bson:"downVotes"`
	LikedBy     []string  `bson:"likedBy"`
}

type CommentDB struct {
	ID        string    `bson:"_id"`
	PostID    string    `bson:"postId"`
	Text      string    `bson:"text"`
	AuthorID  string    `bson:"authorId"`
	CreatedAt time.Time `bson:"createdAt"`
	LikedBy   []string  `bson:"likedBy"`
}

type JoinRequestDB struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"userId"`
	CommunityID string    `bson:"communityId"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type NotificationDB struct {
	ID        string    `bson:"_id"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"createdAt"`
}

var upsert = options.Replace().SetUpsert(true)

func (m *MongoDB) SaveUser(ctx context.Context, u *models.User) error {
	doc := UserDB{
		ID:     u.ID.String(),
		Name:   u.Name,
		Impact: u.Impact,
		Badges: u.Badges,
	}
	_, err := m.Users.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, upsert)
	if err != nil {
		return fmt.Errorf("failed to save user: %v", err)
	}
	return nil
}

func (m *MongoDB) SaveCommunity(ctx context.Context, c *models.Community) error {
	doc := CommunityDB{
		ID:        c.ID.String(),
		Name:      c.Name,
		Members:   idStrings(c.Members),
		CreatedAt: c.CreatedAt,
	}
	if c.ParentID != nil {
		parent := c.ParentID.String()
		doc.ParentID = &parent
	}
	_, err := m.Communities.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, upsert)
	if err != nil {
		return fmt.Errorf("failed to save community: %v", err)
	}
	return nil
}

func (m *MongoDB) SavePost(ctx context.Context, communityID uuid.UUID, p *models.Post) error {
	doc := PostDB{
		ID:          p.ID.String(),
		CommunityID: communityID.String(),
		Text:        p.Text,
		AuthorID:    p.AuthorID.String(),
		CreatedAt:   p.CreatedAt,
		UpVotes:     p.UpVotes,
		DownVotes:   p.DownVotes,
		LikedBy:     idStrings(p.LikedBy),
	}
	_, err := m.Posts.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, upsert)
	if err != nil {
		return fmt.Errorf("failed to save post: %v", err)
	}
	return nil
}

func (m *MongoDB) SaveComment(ctx context.Context, cm *models.Comment) error {
	doc := CommentDB{
		ID:        cm.ID.String(),
		PostID:    cm.PostID.String(),
		Text:      cm.Text,
		AuthorID:  cm.AuthorID.String(),
		CreatedAt: cm.CreatedAt,
		LikedBy:   idStrings(cm.LikedBy),
	}
	_, err := m.Comments.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, upsert)
	if err != nil {
		return fmt.Errorf("failed to save comment: %v", err)
	}
	return nil
}

func (m *MongoDB) SaveJoinRequest(ctx context.Context, r *models.JoinRequest) error {
	doc := JoinRequestDB{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		CommunityID: r.CommunityID.String(),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
	_, err := m.JoinRequests.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, upsert)
	if err != nil {
		return fmt.Errorf("failed to save join request: %v", err)
	}
	return nil
}

func (m *MongoDB) SaveNotification(ctx context.Context, n *models.Notification) error {
	doc := NotificationDB{
		ID:        n.ID.String(),
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
	}
	_, err := m.Notifications.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, upsert)
	if err != nil {
		return fmt.Errorf("failed to save notification: %v", err)
	}
	return nil
}

// LoadStore rebuilds the in-memory store from the mirrored collections.
// Records are replayed in creation order so the store's internal ordering
// (communities by creation, posts newest first, comments chronological)
// comes out the same as when they were written.
func (m *MongoDB) LoadStore(ctx context.Context, s *store.Store) error {
	var users []UserDB
	if err := m.findAll(ctx, m.Users, &users); err != nil {
		return err
	}
	for _, doc := range users {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		s.PutUser(&models.User{ID: id, Name: doc.Name, Impact: doc.Impact, Badges: doc.Badges})
	}

	var communities []CommunityDB
	if err := m.findAll(ctx, m.Communities, &communities); err != nil {
		return err
	}
	sort.Slice(communities, func(i, j int) bool {
		return communities[i].CreatedAt.Before(communities[j].CreatedAt)
	})
	for _, doc := range communities {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		c := &models.Community{
			ID:        id,
			Name:      doc.Name,
			Members:   idSet(doc.Members),
			Posts:     make([]*models.Post, 0),
			CreatedAt: doc.CreatedAt,
		}
		if doc.ParentID != nil {
			if parentID, err := uuid.Parse(*doc.ParentID); err == nil {
				c.ParentID = &parentID
			}
		}
		s.AddCommunity(c)
	}

	var posts []PostDB
	if err := m.findAll(ctx, m.Posts, &posts); err != nil {
		return err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
	for _, doc := range posts {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		communityID, err := uuid.Parse(doc.CommunityID)
		if err != nil {
			continue
		}
		c, ok := s.Community(communityID)
		if !ok {
			continue
		}
		authorID, _ := uuid.Parse(doc.AuthorID)
		s.AddPost(c, &models.Post{
			ID:        id,
			Text:      doc.Text,
			AuthorID:  authorID,
			CreatedAt: doc.CreatedAt,
			UpVotes:   doc.UpVotes,
			DownVotes: doc.DownVotes,
			Comments:  make([]*models.Comment, 0),
			LikedBy:   idSet(doc.LikedBy),
		})
	}

	var comments []CommentDB
	if err := m.findAll(ctx, m.Comments, &comments); err != nil {
		return err
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	for _, doc := range comments {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		postID, err := uuid.Parse(doc.PostID)
		if err != nil {
			continue
		}
		p, ok := s.Post(postID)
		if !ok {
			continue
		}
		authorID, _ := uuid.Parse(doc.AuthorID)
		s.AddComment(p, &models.Comment{
			ID:        id,
			Text:      doc.Text,
			AuthorID:  authorID,
			PostID:    postID,
			CreatedAt: doc.CreatedAt,
			LikedBy:   idSet(doc.LikedBy),
		})
	}

	var requests []JoinRequestDB
	if err := m.findAll(ctx, m.JoinRequests, &requests); err != nil {
		return err
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	for _, doc := range requests {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		userID, _ := uuid.Parse(doc.UserID)
		communityID, _ := uuid.Parse(doc.CommunityID)
		s.AddRequest(&models.JoinRequest{
			ID:          id,
			UserID:      userID,
			CommunityID: communityID,
			Status:      models.JoinRequestStatus(doc.Status),
			CreatedAt:   doc.CreatedAt,
		})
	}

	return nil
}

// LoadFeed rebuilds the notification log, oldest first so the restored feed
// ends up newest first.
func (m *MongoDB) LoadFeed(ctx context.Context, l *store.NotificationLog) error {
	var notifications []NotificationDB
	if err := m.findAll(ctx, m.Notifications, &notifications); err != nil {
		return err
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.Before(notifications[j].CreatedAt)
	})
	for _, doc := range notifications {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		l.Restore(&models.Notification{ID: id, Text: doc.Text, CreatedAt: doc.CreatedAt})
	}
	return nil
}

func (m *MongoDB) findAll(ctx context.Context, coll *mongo.Collection, out interface{}) error {
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to query %s: %v", coll.Name(), err)
	}
	return cur.All(ctx, out)
}

func idStrings(set map[uuid.UUID]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id.String())
	}
	sort.Strings(out)
	return out
}

func idSet(ids []string) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, raw := range ids {
		if id, err := uuid.Parse(raw); err == nil {
			set[id] = true
		}
	}
	return set
}
