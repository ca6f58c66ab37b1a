package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"campus-grove/internal/models"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Code    string  `json:"Code"`
	Message string  `json:"Message"`
	Origin  *string `json:"Origin"`
}

func (s *Simulator) SimulateActivities(ctx context.Context) error {
	log.Printf("Starting activities simulation...")

	// Comments, likes and votes wait until there is something to engage with
	postsAvailable := make(chan struct{})

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulatePosts(ctx, postsAvailable)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			return
		case <-postsAvailable:
			log.Printf("Starting comments after posts available...")
			s.simulateComments(ctx)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			return
		case <-postsAvailable:
			log.Printf("Starting votes and likes after posts available...")
			s.simulateEngagement(ctx)
		}
	}()

	wg.Wait()
	return nil
}

func (s *Simulator) simulatePosts(ctx context.Context, postsAvailable chan struct{}) {
	log.Printf("Starting post simulation...")

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	const numWorkers = 5
	postJobs := make(chan *SimulatedUser, s.config.NumUsers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for user := range postJobs {
				if len(user.Memberships) == 0 {
					continue
				}

				if rand.Float64() < (s.config.PostFrequency/3600.0)/2.0 {
					communityID := user.Memberships[rand.Intn(len(user.Memberships))]

					data := map[string]interface{}{
						"communityId": communityID.String(),
						"authorId":    user.ID.String(),
						"text":        fmt.Sprintf("Post by %s at %s", user.Name, time.Now().Format(time.RFC3339)),
					}

					resp, err := s.makeRequest("POST", "/posts", data)
					if err != nil {
						log.Printf("Worker %d failed to create post: %v", workerID, err)
						continue
					}

					var created struct {
						ID string `json:"id"`
					}
					if err := json.Unmarshal(resp, &created); err == nil {
						if postID, err := uuid.Parse(created.ID); err == nil {
							s.mu.Lock()
							user.Posts = append(user.Posts, postID)
							s.mu.Unlock()
						}
					}

					s.stats.mu.Lock()
					s.stats.TotalPosts++
					postCount := s.stats.TotalPosts
					s.stats.mu.Unlock()

					if postCount == 10 {
						select {
						case <-postsAvailable:
						default:
							close(postsAvailable)
						}
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(postJobs)
			wg.Wait()
			return
		case <-ticker.C:
			s.mu.RLock()
			for _, user := range s.users {
				select {
				case postJobs <- user:
				default:
				}
			}
			s.mu.RUnlock()
		}
	}
}

func (s *Simulator) simulateComments(ctx context.Context) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	const numWorkers = 5
	commentJobs := make(chan *SimulatedUser, s.config.NumUsers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for user := range commentJobs {
				if rand.Float64() < (s.config.CommentFrequency/3600.0)/2.0 {
					postID, err := s.getRandomPost(user)
					if err != nil {
						continue
					}

					data := map[string]interface{}{
						"postId":   postID.String(),
						"authorId": user.ID.String(),
						"text":     fmt.Sprintf("Comment from %s at %s", user.Name, time.Now().Format(time.RFC3339)),
					}

					if _, err := s.makeRequest("POST", "/comments", data); err != nil {
						log.Printf("Worker %d failed to create comment: %v", workerID, err)
						continue
					}

					s.stats.mu.Lock()
					s.stats.TotalComments++
					s.stats.mu.Unlock()
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(commentJobs)
			wg.Wait()
			return
		case <-ticker.C:
			s.mu.RLock()
			for _, user := range s.users {
				select {
				case commentJobs <- user:
				default:
				}
			}
			s.mu.RUnlock()
		}
	}
}

// simulateEngagement mixes vote clicks and like toggles over known posts.
func (s *Simulator) simulateEngagement(ctx context.Context) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	const numWorkers = 5
	jobs := make(chan *SimulatedUser, s.config.NumUsers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for user := range jobs {
				if rand.Float64() < (s.config.VoteFrequency/3600.0)/2.0 {
					s.castVote(user)
				}
				if rand.Float64() < (s.config.LikeFrequency/3600.0)/2.0 {
					s.toggleLike(user)
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case <-ticker.C:
			s.mu.RLock()
			for _, user := range s.users {
				select {
				case jobs <- user:
				default:
				}
			}
			s.mu.RUnlock()
		}
	}
}

func (s *Simulator) castVote(user *SimulatedUser) {
	communityID, post, err := s.getRandomCommunityPost(user)
	if err != nil {
		return
	}

	s.mu.RLock()
	alreadyVoted := user.VotedPosts[post.ID]
	s.mu.RUnlock()
	if alreadyVoted {
		return
	}

	delta := 1
	if rand.Float64() >= 0.7 {
		delta = -1
	}

	data := map[string]interface{}{
		"communityId": communityID.String(),
		"postId":      post.ID.String(),
		"delta":       delta,
	}

	if _, err := s.makeRequest("POST", "/posts/vote", data); err != nil {
		return
	}

	s.mu.Lock()
	user.VotedPosts[post.ID] = true
	s.mu.Unlock()

	s.stats.mu.Lock()
	s.stats.TotalVotes++
	s.stats.mu.Unlock()
}

func (s *Simulator) toggleLike(user *SimulatedUser) {
	_, post, err := s.getRandomCommunityPost(user)
	if err != nil {
		return
	}

	// Sometimes like a comment on the post instead of the post itself
	if len(post.Comments) > 0 && rand.Float64() < 0.3 {
		comment := post.Comments[rand.Intn(len(post.Comments))]
		data := map[string]interface{}{
			"commentId": comment.ID.String(),
			"userId":    user.ID.String(),
		}
		if _, err := s.makeRequest("POST", "/comments/like", data); err != nil {
			return
		}
	} else {
		data := map[string]interface{}{
			"postId": post.ID.String(),
			"userId": user.ID.String(),
		}
		if _, err := s.makeRequest("POST", "/posts/like", data); err != nil {
			return
		}
	}

	s.stats.mu.Lock()
	s.stats.TotalLikes++
	s.stats.mu.Unlock()
}

// Helper functions

func (s *Simulator) getRandomPost(user *SimulatedUser) (uuid.UUID, error) {
	_, post, err := s.getRandomCommunityPost(user)
	if err != nil {
		return uuid.Nil, err
	}
	return post.ID, nil
}

func (s *Simulator) getRandomCommunityPost(user *SimulatedUser) (uuid.UUID, *models.Post, error) {
	s.mu.RLock()
	memberships := make([]uuid.UUID, len(user.Memberships))
	copy(memberships, user.Memberships)
	s.mu.RUnlock()

	if len(memberships) == 0 {
		return uuid.Nil, nil, fmt.Errorf("no memberships")
	}

	rand.Shuffle(len(memberships), func(i, j int) {
		memberships[i], memberships[j] = memberships[j], memberships[i]
	})

	for _, communityID := range memberships {
		resp, err := s.makeRequest("GET", fmt.Sprintf("/communities?id=%s", communityID), nil)
		if err != nil {
			continue
		}

		var community models.Community
		if err := json.Unmarshal(resp, &community); err != nil {
			continue
		}
		if len(community.Posts) == 0 {
			continue
		}

		return communityID, community.Posts[rand.Intn(len(community.Posts))], nil
	}

	return uuid.Nil, nil, fmt.Errorf("no posts found in any joined community")
}
