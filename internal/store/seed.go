package store

import (
	"time"

	"campus-grove/internal/models"

	"github.com/google/uuid"
)

// Seed loads the demo campus dataset: four users, a root community with a
// handful of discussed posts, two child communities and two pending join
// requests. Intended for local runs and the simulator; production starts
// empty.
func (s *Store) Seed() {
	now := time.Now()

	student := s.seedUser("IITB Student", 0)
	admin := s.seedUser("Admin User", 100, "Founder", "Moderator")
	john := s.seedUser("John Doe", 25, "Active Member")
	jane := s.seedUser("Jane Smith", 50, "Contributor")

	general := &models.Community{
		ID:        s.NewID(),
		Name:      "IITB General",
		Members:   memberSet(student.ID, admin.ID, john.ID, jane.ID),
		Posts:     make([]*models.Post, 0),
		CreatedAt: now.Add(-48 * time.Hour),
	}
	s.AddCommunity(general)

	welcome := s.seedPost(general, admin.ID,
		"Welcome to IITB General! Feel free to share updates, ask questions, and connect with fellow students!",
		now.Add(-24*time.Hour), 15, 0, student.ID, john.ID, jane.ID)
	s.seedComment(welcome, student.ID, "Thanks for creating this community!",
		now.Add(-23*time.Hour), admin.ID, john.ID)
	s.seedComment(welcome, john.ID, "Great initiative! Looking forward to engaging discussions.",
		now.Add(-22*time.Hour), student.ID)

	study := s.seedPost(general, john.ID,
		"Anyone interested in forming a study group for CS101? Library, Tuesdays and Thursdays at 6 PM.",
		now.Add(-12*time.Hour), 8, 0, student.ID, admin.ID, jane.ID)
	s.seedComment(study, student.ID, "Count me in! I need help with algorithms.",
		now.Add(-11*time.Hour), john.ID)
	s.seedComment(study, jane.ID, "I can help with data structures. Let me know the details.",
		now.Add(-11*time.Hour), student.ID, john.ID)

	s.seedPost(general, jane.ID,
		"Great weather today! Anyone up for a stroll around the lake?",
		now.Add(-6*time.Hour), 5, 0, student.ID, admin.ID)

	hostel := &models.Community{
		ID:        s.NewID(),
		Name:      "Hostel 8",
		ParentID:  &general.ID,
		Members:   memberSet(student.ID, admin.ID),
		Posts:     make([]*models.Post, 0),
		CreatedAt: now.Add(-36 * time.Hour),
	}
	s.AddCommunity(hostel)

	csdept := &models.Community{
		ID:        s.NewID(),
		Name:      "CS Department",
		ParentID:  &general.ID,
		Members:   memberSet(student.ID, john.ID),
		Posts:     make([]*models.Post, 0),
		CreatedAt: now.Add(-30 * time.Hour),
	}
	s.AddCommunity(csdept)

	s.AddRequest(&models.JoinRequest{
		ID:          s.NewID(),
		UserID:      john.ID,
		CommunityID: hostel.ID,
		Status:      models.RequestPending,
		CreatedAt:   now.Add(-2 * time.Hour),
	})
	s.AddRequest(&models.JoinRequest{
		ID:          s.NewID(),
		UserID:      jane.ID,
		CommunityID: csdept.ID,
		Status:      models.RequestPending,
		CreatedAt:   now.Add(-1 * time.Hour),
	})
}

// SeedFeed loads the demo notification feed.
func (l *NotificationLog) SeedFeed() {
	l.Append("Welcome to Campus Grove!")
	l.Append("New community created: IITB General")
}

func (s *Store) seedUser(name string, impact int, badges ...string) *models.User {
	u := &models.User{
		ID:     s.NewID(),
		Name:   name,
		Impact: impact,
		Badges: append([]string{}, badges...),
	}
	s.PutUser(u)
	return u
}

func (s *Store) seedPost(c *models.Community, authorID uuid.UUID, text string, at time.Time, up, down int, likedBy ...uuid.UUID) *models.Post {
	p := &models.Post{
		ID:        s.NewID(),
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: at,
		UpVotes:   up,
		DownVotes: down,
		Comments:  make([]*models.Comment, 0),
		LikedBy:   memberSet(likedBy...),
	}
	s.AddPost(c, p)
	return p
}

func (s *Store) seedComment(p *models.Post, authorID uuid.UUID, text string, at time.Time, likedBy ...uuid.UUID) *models.Comment {
	cm := &models.Comment{
		ID:        s.NewID(),
		Text:      text,
		AuthorID:  authorID,
		PostID:    p.ID,
		CreatedAt: at,
		LikedBy:   memberSet(likedBy...),
	}
	s.AddComment(p, cm)
	return cm
}

func memberSet(ids ...uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
