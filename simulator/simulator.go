package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SimConfig struct {
	NumUsers         int
	NumCommunities   int
	ChildrenPerGroup int
	SimulationTime   time.Duration
	PostFrequency    float64 // posts per user per hour
	CommentFrequency float64 // comments per user per hour
	VoteFrequency    float64 // votes per user per hour
	LikeFrequency    float64 // likes per user per hour
	AdminPercentage  float64 // share of users that join with admin rights
	ZipfS            float64
	EngineURL        string
}

type SimulationStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	TotalRequests    int64
	SuccessRequests  int64
	FailedRequests   int64
	AverageLatency   time.Duration
	TotalPosts       int
	TotalComments    int
	TotalVotes       int
	TotalLikes       int
	PendingApprovals int
}

// SimulatedUser is a synthetic member of the platform. IDs are generated
// client side since membership operations accept any caller identity.
type SimulatedUser struct {
	ID          uuid.UUID
	Name        string
	IsAdmin     bool
	Memberships []uuid.UUID
	Posts       []uuid.UUID
	VotedPosts  map[uuid.UUID]bool
}

type simCommunity struct {
	ID       uuid.UUID
	Name     string
	ParentID *uuid.UUID
}

type Simulator struct {
	config      SimConfig
	stats       *SimulationStats
	users       []*SimulatedUser
	communities []*simCommunity
	client      *http.Client
	mu          sync.RWMutex
}

func NewSimulator(config SimConfig) *Simulator {
	return &Simulator{
		config: config,
		stats: &SimulationStats{
			StartTime: time.Now(),
		},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *Simulator) Run(ctx context.Context) error {
	log.Printf("Starting simulation...")

	if err := s.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.SimulateActivities(ctx); err != nil {
			log.Printf("Activities simulation error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.approvePendingRequests(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.collectMetrics(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *Simulator) initialize(ctx context.Context) error {
	log.Printf("Phase 1: Generating %d users...", s.config.NumUsers)
	s.generateUsers()

	log.Printf("Phase 2: Creating %d communities...", s.config.NumCommunities)
	if err := s.createCommunities(ctx); err != nil {
		return fmt.Errorf("failed to create communities: %v", err)
	}

	log.Printf("Phase 3: Simulating community memberships...")
	if err := s.simulateJoins(ctx); err != nil {
		return fmt.Errorf("failed to simulate joins: %v", err)
	}

	log.Printf("Initialization completed successfully")
	return nil
}

func (s *Simulator) generateUsers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make([]*SimulatedUser, 0, s.config.NumUsers)
	for i := 0; i < s.config.NumUsers; i++ {
		s.users = append(s.users, &SimulatedUser{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("user_%d", i),
			IsAdmin:    rand.Float64() < s.config.AdminPercentage,
			VotedPosts: make(map[uuid.UUID]bool),
		})
	}
}

func (s *Simulator) createCommunities(ctx context.Context) error {
	s.communities = make([]*simCommunity, 0, s.config.NumCommunities)

	for i := 0; i < s.config.NumCommunities; i++ {
		creator := s.users[rand.Intn(len(s.users))]
		theme := getRandomTheme()
		name := fmt.Sprintf("%s_%d", theme, i)

		root, err := s.createCommunity(ctx, name, nil, creator.ID)
		if err != nil {
			log.Printf("Failed to create community %s: %v", name, err)
			continue
		}
		s.communities = append(s.communities, root)
		creator.Memberships = append(creator.Memberships, root.ID)

		// A few sub-communities under each root
		for j := 0; j < s.config.ChildrenPerGroup; j++ {
			childName := fmt.Sprintf("%s_sub_%d", name, j)
			child, err := s.createCommunity(ctx, childName, &root.ID, creator.ID)
			if err != nil {
				log.Printf("Failed to create sub-community %s: %v", childName, err)
				continue
			}
			s.communities = append(s.communities, child)
			creator.Memberships = append(creator.Memberships, child.ID)
		}

		time.Sleep(50 * time.Millisecond)
	}

	return nil
}

func (s *Simulator) createCommunity(ctx context.Context, name string, parentID *uuid.UUID, creatorID uuid.UUID) (*simCommunity, error) {
	data := map[string]interface{}{
		"name":      name,
		"creatorId": creatorID.String(),
	}
	if parentID != nil {
		data["parentId"] = parentID.String()
	}

	resp, err := s.makeRequest("POST", "/communities", data)
	if err != nil {
		return nil, err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse community response: %v", err)
	}
	id, err := uuid.Parse(result.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid community ID returned: %v", err)
	}

	return &simCommunity{ID: id, Name: name, ParentID: parentID}, nil
}

func getRandomTheme() string {
	themes := []string{
		"robotics", "chess", "debate", "astronomy", "music",
		"photography", "quant", "dance", "drama", "coding",
		"cycling", "quiz", "film", "design", "esports",
	}
	return themes[rand.Intn(len(themes))]
}

// simulateJoins has each user attempt a Zipf-distributed number of
// memberships. Admin joins land immediately; the rest stay pending until the
// approval loop picks them up.
func (s *Simulator) simulateJoins(ctx context.Context) error {
	zipf := rand.NewZipf(rand.New(rand.NewSource(time.Now().UnixNano())),
		s.config.ZipfS, 1, uint64(len(s.communities)))

	for _, user := range s.users {
		numJoins := (int(zipf.Uint64()) % len(s.communities)) + 1

		available := make([]*simCommunity, len(s.communities))
		copy(available, s.communities)
		rand.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})

		for i := 0; i < numJoins && i < len(available); i++ {
			target := available[i]
			state, err := s.joinCommunity(ctx, user.ID, target.ID, user.IsAdmin)
			if err != nil {
				log.Printf("Failed to join community: %v", err)
				continue
			}
			if state == "member" {
				user.Memberships = append(user.Memberships, target.ID)
			} else {
				s.stats.mu.Lock()
				s.stats.PendingApprovals++
				s.stats.mu.Unlock()
			}
		}

		time.Sleep(20 * time.Millisecond)
	}

	return nil
}

func (s *Simulator) joinCommunity(ctx context.Context, userID, communityID uuid.UUID, asAdmin bool) (string, error) {
	data := map[string]interface{}{
		"userId":      userID.String(),
		"communityId": communityID.String(),
		"asAdmin":     asAdmin,
	}

	resp, err := s.makeRequest("POST", "/communities/join", data)
	if err != nil {
		return "", err
	}

	var outcome struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(resp, &outcome); err != nil {
		return "", fmt.Errorf("failed to parse join response: %v", err)
	}
	return outcome.State, nil
}

// approvePendingRequests periodically drains the pending queue the way a
// platform admin would, promoting requesters to members.
func (s *Simulator) approvePendingRequests(ctx context.Context) {
	log.Printf("Starting approval loop...")
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resp, err := s.makeRequest("GET", "/requests", nil)
			if err != nil {
				log.Printf("Failed to list join requests: %v", err)
				continue
			}

			var pending []struct {
				ID          string `json:"id"`
				UserID      string `json:"userId"`
				CommunityID string `json:"communityId"`
			}
			if err := json.Unmarshal(resp, &pending); err != nil {
				log.Printf("Failed to parse join requests: %v", err)
				continue
			}

			for _, req := range pending {
				data := map[string]interface{}{"requestId": req.ID}
				if _, err := s.makeRequest("POST", "/requests/approve", data); err != nil {
					log.Printf("Failed to approve request %s: %v", req.ID, err)
					continue
				}
				s.recordApproval(req.UserID, req.CommunityID)
			}
		}
	}
}

func (s *Simulator) recordApproval(userID, communityID string) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return
	}
	cid, err := uuid.Parse(communityID)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == uid {
			user.Memberships = append(user.Memberships, cid)
			break
		}
	}

	s.stats.mu.Lock()
	if s.stats.PendingApprovals > 0 {
		s.stats.PendingApprovals--
	}
	s.stats.mu.Unlock()
}

func (s *Simulator) makeRequest(method, endpoint string, data interface{}) ([]byte, error) {
	var body []byte
	var err error

	if data != nil {
		body, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, s.config.EngineURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	s.recordRequestMetrics(start, err)

	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (s *Simulator) recordRequestMetrics(start time.Time, err error) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	latency := time.Since(start)
	s.stats.TotalRequests++

	if err != nil {
		s.stats.FailedRequests++
	} else {
		s.stats.SuccessRequests++
	}

	totalLatency := s.stats.AverageLatency * time.Duration(s.stats.TotalRequests-1)
	s.stats.AverageLatency = (totalLatency + latency) / time.Duration(s.stats.TotalRequests)
}

func (s *Simulator) collectMetrics(ctx context.Context) {
	log.Printf("Starting metrics collection...")
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.stats.mu.RLock()
			elapsed := time.Since(s.stats.StartTime)
			requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()
			successRate := 0.0
			if s.stats.TotalRequests > 0 {
				successRate = float64(s.stats.SuccessRequests) / float64(s.stats.TotalRequests) * 100
			}

			log.Printf("\nSimulation Metrics (%.1f seconds elapsed):", elapsed.Seconds())
			log.Printf("- Request Rate: %.2f req/sec", requestRate)
			log.Printf("- Success Rate: %.1f%%", successRate)
			log.Printf("- Average Latency: %v", s.stats.AverageLatency)
			log.Printf("- Total Posts: %d", s.stats.TotalPosts)
			log.Printf("- Total Comments: %d", s.stats.TotalComments)
			log.Printf("- Total Votes: %d", s.stats.TotalVotes)
			log.Printf("- Total Likes: %d", s.stats.TotalLikes)
			log.Printf("- Pending Approvals: %d", s.stats.PendingApprovals)
			log.Printf("- Failed Requests: %d", s.stats.FailedRequests)
			s.stats.mu.RUnlock()
		}
	}
}

// SimulationMetrics holds the final metrics of a simulation run
type SimulationMetrics struct {
	TotalUsers        int
	TotalCommunities  int
	TotalPosts        int
	TotalComments     int
	TotalVotes        int
	TotalLikes        int
	AverageLatency    time.Duration
	ErrorCount        int
	RequestsPerSecond float64
}

// GetMetrics returns the current simulation metrics
func (s *Simulator) GetMetrics() SimulationMetrics {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	elapsed := time.Since(s.stats.StartTime)
	requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()

	return SimulationMetrics{
		TotalUsers:        len(s.users),
		TotalCommunities:  len(s.communities),
		TotalPosts:        s.stats.TotalPosts,
		TotalComments:     s.stats.TotalComments,
		TotalVotes:        s.stats.TotalVotes,
		TotalLikes:        s.stats.TotalLikes,
		AverageLatency:    s.stats.AverageLatency,
		ErrorCount:        int(s.stats.FailedRequests),
		RequestsPerSecond: requestRate,
	}
}
