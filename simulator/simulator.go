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
	NumPosts         int
	SimulationTime   time.Duration
	RenderFrequency  float64 // renders per user per hour
	LikeFrequency    float64 // like toggles per user per hour
	CommentFrequency float64 // comments per user per hour
	DeleteRate       float64 // chance per tick that an owner deletes a post
	DisconnectRate   float64
	ReconnectRate    float64
	EngineURL        string
}

type SimulationStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	TotalRequests    int64
	SuccessRequests  int64
	FailedRequests   int64
	AverageLatency   time.Duration
	ActiveUsers      int
	TotalRenders     int
	TotalLikes       int
	TotalComments    int
	TotalDeletes     int
	RequestLatencies []time.Duration
}

// Track simulated users with their session state
type SimulatedUser struct {
	ID          string
	DisplayName string
	Token       string
	IsConnected bool
	LastActive  time.Time
	OwnedPosts  []string        // Posts this user authored
	LikedPosts  map[string]bool // Posts this user has toggled a like on
}

// A seeded post record the simulator renders and mutates.
type SimulatedPost struct {
	ID      string
	OwnerID string
	Record  map[string]interface{}
	Deleted bool
}

type FeedSimulator struct {
	config SimConfig
	stats  *SimulationStats
	users  []*SimulatedUser
	posts  []*SimulatedPost
	client *http.Client
	mu     sync.RWMutex
}

func NewFeedSimulator(config SimConfig) *FeedSimulator {
	return &FeedSimulator{
		config: config,
		stats: &SimulationStats{
			StartTime:        time.Now(),
			RequestLatencies: make([]time.Duration, 0),
		},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *FeedSimulator) Run(ctx context.Context) error {
	log.Printf("Starting feed simulation...")

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
		s.simulateConnectivity(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.collectMetrics(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *FeedSimulator) initialize(ctx context.Context) error {
	log.Printf("Starting initialization...")

	log.Printf("Phase 1: Opening %d sessions...", s.config.NumUsers)
	if err := s.openSessions(ctx); err != nil {
		return fmt.Errorf("failed to open sessions: %v", err)
	}

	log.Printf("Phase 2: Seeding %d posts...", s.config.NumPosts)
	s.seedPosts()

	log.Printf("Phase 3: Binding seeded posts to controllers...")
	if err := s.bindSeededPosts(ctx); err != nil {
		return fmt.Errorf("failed to bind seeded posts: %v", err)
	}

	log.Printf("Initialization completed successfully")
	return nil
}

// openSessions obtains a token per simulated user from the gateway.
func (s *FeedSimulator) openSessions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make([]*SimulatedUser, 0, s.config.NumUsers)

	// Shared rate limiter so session setup does not hammer the gateway
	rateLimiter := time.NewTicker(50 * time.Millisecond)
	defer rateLimiter.Stop()

	for i := 0; i < s.config.NumUsers; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rateLimiter.C:
		}

		user := &SimulatedUser{
			ID:          uuid.NewString(),
			DisplayName: fmt.Sprintf("user_%d", i),
			IsConnected: true,
			LastActive:  time.Now(),
			OwnedPosts:  make([]string, 0),
			LikedPosts:  make(map[string]bool),
		}

		var err error
		for retries := 0; retries < 3; retries++ {
			if err = s.openSession(user); err == nil {
				break
			}
			log.Printf("Retry %d for session %s: %v", retries+1, user.DisplayName, err)
			time.Sleep(time.Duration(retries+1) * time.Second)
		}
		if err != nil {
			log.Printf("Failed to open session for %s after retries: %v", user.DisplayName, err)
			continue
		}

		s.users = append(s.users, user)
		if (i+1)%10 == 0 {
			log.Printf("Opened %d/%d sessions...", i+1, s.config.NumUsers)
		}
	}

	s.stats.mu.Lock()
	s.stats.ActiveUsers = len(s.users)
	s.stats.mu.Unlock()

	log.Printf("Successfully opened %d sessions", len(s.users))
	return nil
}

func (s *FeedSimulator) openSession(user *SimulatedUser) error {
	data := map[string]interface{}{
		"id":          user.ID,
		"displayName": user.DisplayName,
		"avatarSrc":   fmt.Sprintf("https://cdn.example.com/avatars/%s.png", user.ID),
	}

	resp, err := s.makeRequest("", "POST", "/session", data)
	if err != nil {
		return fmt.Errorf("session request failed: %v", err)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to parse session response: %v", err)
	}
	if result.Token == "" {
		return fmt.Errorf("session returned empty token")
	}

	user.Token = result.Token
	return nil
}

// seedPosts builds local post records spread over the content types the
// renderer understands. Owners are drawn from the simulated users.
func (s *FeedSimulator) seedPosts() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = make([]*SimulatedPost, 0, s.config.NumPosts)
	for i := 0; i < s.config.NumPosts; i++ {
		owner := s.users[rand.Intn(len(s.users))]
		post := buildSamplePost(i, owner)
		s.posts = append(s.posts, post)
		owner.OwnedPosts = append(owner.OwnedPosts, post.ID)
	}
}

// bindSeededPosts renders every seeded post once so its controller exists
// before the activity loops start issuing mutations.
func (s *FeedSimulator) bindSeededPosts(ctx context.Context) error {
	for _, post := range s.posts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		user := s.users[rand.Intn(len(s.users))]
		if err := s.renderPost(user, post, false); err != nil {
			log.Printf("Failed to bind post %s: %v", post.ID, err)
			continue
		}
	}
	return nil
}

// Helper method to make authenticated HTTP requests
func (s *FeedSimulator) makeRequest(token, method, endpoint string, data interface{}) ([]byte, error) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.recordRequestMetrics(start, err)

	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		var errResp ErrorResponse
		if json.Unmarshal(detail, &errResp) == nil && errResp.Message != "" {
			return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, errResp.Message)
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, detail)
	}

	return io.ReadAll(resp.Body)
}

func (s *FeedSimulator) simulateConnectivity(ctx context.Context) {
	log.Printf("Starting connectivity simulation...")
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			for _, user := range s.users {
				if user.IsConnected {
					if rand.Float64() < s.config.DisconnectRate {
						user.IsConnected = false
						s.stats.mu.Lock()
						s.stats.ActiveUsers--
						s.stats.mu.Unlock()
					}
				} else {
					if rand.Float64() < s.config.ReconnectRate {
						user.IsConnected = true
						s.stats.mu.Lock()
						s.stats.ActiveUsers++
						s.stats.mu.Unlock()
					}
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *FeedSimulator) recordRequestMetrics(start time.Time, err error) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	latency := time.Since(start)
	s.stats.TotalRequests++
	s.stats.RequestLatencies = append(s.stats.RequestLatencies, latency)

	if err != nil {
		s.stats.FailedRequests++
	} else {
		s.stats.SuccessRequests++
	}

	totalLatency := s.stats.AverageLatency * time.Duration(s.stats.TotalRequests-1)
	s.stats.AverageLatency = (totalLatency + latency) / time.Duration(s.stats.TotalRequests)
}

func (s *FeedSimulator) collectMetrics(ctx context.Context) {
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

			activeUsers := 0
			s.mu.RLock()
			for _, user := range s.users {
				if user.IsConnected {
					activeUsers++
				}
			}
			s.mu.RUnlock()

			log.Printf("\nSimulation Metrics (%.1f seconds elapsed):", elapsed.Seconds())
			log.Printf("- Request Rate: %.2f req/sec", requestRate)
			log.Printf("- Success Rate: %.1f%%", successRate)
			log.Printf("- Average Latency: %v", s.stats.AverageLatency)
			log.Printf("- Active Users: %d/%d", activeUsers, len(s.users))
			log.Printf("- Total Renders: %d", s.stats.TotalRenders)
			log.Printf("- Total Like Toggles: %d", s.stats.TotalLikes)
			log.Printf("- Total Comments: %d", s.stats.TotalComments)
			log.Printf("- Total Deletes: %d", s.stats.TotalDeletes)
			log.Printf("- Failed Requests: %d", s.stats.FailedRequests)

			s.stats.mu.RUnlock()
		}
	}
}

// SimulationMetrics holds the metrics of the simulation
type SimulationMetrics struct {
	TotalUsers        int
	ActiveUsers       int
	TotalRenders      int
	TotalLikes        int
	TotalComments     int
	TotalDeletes      int
	AverageLatency    time.Duration
	ErrorCount        int
	RequestsPerSecond float64
}

// GetMetrics returns the current simulation metrics
func (s *FeedSimulator) GetMetrics() SimulationMetrics {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	elapsed := time.Since(s.stats.StartTime)
	requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()

	return SimulationMetrics{
		TotalUsers:        len(s.users),
		ActiveUsers:       s.stats.ActiveUsers,
		TotalRenders:      s.stats.TotalRenders,
		TotalLikes:        s.stats.TotalLikes,
		TotalComments:     s.stats.TotalComments,
		TotalDeletes:      s.stats.TotalDeletes,
		AverageLatency:    s.stats.AverageLatency,
		ErrorCount:        int(s.stats.FailedRequests),
		RequestsPerSecond: requestRate,
	}
}
