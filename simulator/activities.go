package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"
)

type ErrorResponse struct {
	Code    string  `json:"Code"`
	Message string  `json:"Message"`
	Origin  *string `json:"Origin"`
}

func (s *FeedSimulator) SimulateActivities(ctx context.Context) error {
	log.Printf("Starting activities simulation...")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateRenders(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateLikes(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateComments(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateDeletes(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *FeedSimulator) simulateRenders(ctx context.Context) {
	log.Printf("Starting render simulation...")
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			user := s.randomConnectedUser()
			if user == nil {
				continue
			}
			if rand.Float64() >= (s.config.RenderFrequency/3600.0)/2.0 {
				continue
			}

			post := s.randomLivePost()
			if post == nil {
				continue
			}

			// Some renders ask for the compact teaser variant
			minimal := rand.Float64() < 0.2
			if err := s.renderPost(user, post, minimal); err != nil {
				log.Printf("Render failed for post %s: %v", post.ID, err)
				continue
			}

			s.stats.mu.Lock()
			s.stats.TotalRenders++
			s.stats.mu.Unlock()
		}
	}
}

func (s *FeedSimulator) simulateLikes(ctx context.Context) {
	log.Printf("Starting like simulation...")
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			user := s.randomConnectedUser()
			if user == nil {
				continue
			}
			if rand.Float64() >= (s.config.LikeFrequency/3600.0)/2.0 {
				continue
			}

			post := s.randomLivePost()
			if post == nil {
				continue
			}

			data := map[string]interface{}{
				"postId": post.ID,
			}
			if _, err := s.makeRequest(user.Token, "POST", "/post/like", data); err != nil {
				log.Printf("Like toggle failed for post %s: %v", post.ID, err)
				continue
			}

			s.mu.Lock()
			user.LikedPosts[post.ID] = !user.LikedPosts[post.ID]
			user.LastActive = time.Now()
			s.mu.Unlock()

			s.stats.mu.Lock()
			s.stats.TotalLikes++
			s.stats.mu.Unlock()
		}
	}
}

func (s *FeedSimulator) simulateComments(ctx context.Context) {
	log.Printf("Starting comment simulation...")
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			user := s.randomConnectedUser()
			if user == nil {
				continue
			}
			if rand.Float64() >= s.config.CommentFrequency/3600.0 {
				continue
			}

			post := s.randomLivePost()
			if post == nil {
				continue
			}

			// Occasionally reply to the post author instead of free text
			if rand.Float64() < 0.25 {
				data := map[string]interface{}{
					"postId":     post.ID,
					"authorName": fmt.Sprintf("user_%d", rand.Intn(s.config.NumUsers)),
				}
				if _, err := s.makeRequest(user.Token, "POST", "/post/reply", data); err != nil {
					log.Printf("Reply failed for post %s: %v", post.ID, err)
				}
				continue
			}

			data := map[string]interface{}{
				"postId": post.ID,
				"text":   randomCommentText(),
			}
			if _, err := s.makeRequest(user.Token, "POST", "/post/comment", data); err != nil {
				log.Printf("Comment failed for post %s: %v", post.ID, err)
				continue
			}

			s.mu.Lock()
			user.LastActive = time.Now()
			s.mu.Unlock()

			s.stats.mu.Lock()
			s.stats.TotalComments++
			s.stats.mu.Unlock()
		}
	}
}

func (s *FeedSimulator) simulateDeletes(ctx context.Context) {
	log.Printf("Starting delete simulation...")
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if rand.Float64() >= s.config.DeleteRate {
				continue
			}

			owner, post := s.randomOwnedPost()
			if owner == nil || post == nil {
				continue
			}

			// First attempt goes out unconfirmed and must be rejected
			data := map[string]interface{}{
				"postId":    post.ID,
				"confirmed": false,
			}
			if _, err := s.makeRequest(owner.Token, "POST", "/post/delete", data); err == nil {
				log.Printf("Unconfirmed delete of post %s was not rejected", post.ID)
			}

			data["confirmed"] = true
			if _, err := s.makeRequest(owner.Token, "POST", "/post/delete", data); err != nil {
				log.Printf("Delete failed for post %s: %v", post.ID, err)
				continue
			}

			s.mu.Lock()
			post.Deleted = true
			s.mu.Unlock()

			s.stats.mu.Lock()
			s.stats.TotalDeletes++
			s.stats.mu.Unlock()
		}
	}
}

func (s *FeedSimulator) renderPost(user *SimulatedUser, post *SimulatedPost, minimal bool) error {
	record, err := json.Marshal(post.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal post record: %v", err)
	}

	data := map[string]interface{}{
		"post":    json.RawMessage(record),
		"minimal": minimal,
	}

	resp, err := s.makeRequest(user.Token, "POST", "/post/render", data)
	if err != nil {
		return err
	}

	var result struct {
		Node      json.RawMessage `json:"node"`
		Liked     bool            `json:"liked"`
		LikeCount int             `json:"likeCount"`
		Deleted   bool            `json:"deleted"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to parse render response: %v", err)
	}
	if !result.Deleted && len(result.Node) == 0 {
		return fmt.Errorf("render returned no tree for live post %s", post.ID)
	}

	return nil
}

func (s *FeedSimulator) randomConnectedUser() *SimulatedUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.users) == 0 {
		return nil
	}
	for attempts := 0; attempts < 10; attempts++ {
		user := s.users[rand.Intn(len(s.users))]
		if user.IsConnected {
			return user
		}
	}
	return nil
}

func (s *FeedSimulator) randomLivePost() *SimulatedPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.posts) == 0 {
		return nil
	}
	for attempts := 0; attempts < 10; attempts++ {
		post := s.posts[rand.Intn(len(s.posts))]
		if !post.Deleted {
			return post
		}
	}
	return nil
}

func (s *FeedSimulator) randomOwnedPost() (*SimulatedUser, *SimulatedPost) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.posts) == 0 {
		return nil, nil
	}
	for attempts := 0; attempts < 10; attempts++ {
		post := s.posts[rand.Intn(len(s.posts))]
		if post.Deleted {
			continue
		}
		for _, user := range s.users {
			if user.ID == post.OwnerID {
				return user, post
			}
		}
	}
	return nil, nil
}

// buildSamplePost produces one post record, cycling through every content
// shape the renderer handles, including the loose wire variants.
func buildSamplePost(seq int, owner *SimulatedUser) *SimulatedPost {
	id := fmt.Sprintf("post_%d", seq)
	author := map[string]interface{}{
		"id":          owner.ID,
		"displayName": owner.DisplayName,
		"avatarSrc":   fmt.Sprintf("https://cdn.example.com/avatars/%s.png", owner.ID),
	}

	record := map[string]interface{}{
		"id":          id,
		"type":        "text",
		"author":      author,
		"authorId":    owner.ID,
		"createdTime": time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour).Unix(),
		"likeCount":   rand.Intn(50),
		"likedByMe":   rand.Float64() < 0.3,
	}

	switch seq % 10 {
	case 0:
		record["message"] = map[string]interface{}{
			"type": "text",
			"text": fmt.Sprintf("Post %d says hello to @%s and links https://example.com/%d", seq, owner.DisplayName, seq),
		}
	case 1:
		record["type"] = "image"
		record["message"] = map[string]interface{}{
			"type": "image",
			"src":  fmt.Sprintf("https://cdn.example.com/images/%d.jpg", seq),
		}
	case 2:
		record["type"] = "video"
		record["message"] = map[string]interface{}{
			"type":      "video",
			"src":       fmt.Sprintf("https://cdn.example.com/videos/%d.mp4", seq),
			"posterSrc": fmt.Sprintf("https://cdn.example.com/posters/%d.jpg", seq),
		}
	case 3:
		record["type"] = "link"
		record["message"] = map[string]interface{}{
			"type":        "link",
			"url":         fmt.Sprintf("https://news.example.com/story/%d", seq),
			"title":       fmt.Sprintf("Story %d", seq),
			"description": "An article worth a look",
			"imageURL":    fmt.Sprintf("https://cdn.example.com/previews/%d.jpg", seq),
		}
	case 4:
		record["type"] = "music"
		record["message"] = map[string]interface{}{
			"type": "music",
			"name": fmt.Sprintf("Track %d", seq),
			"spotifyData": map[string]interface{}{
				"track": map[string]interface{}{
					"id": fmt.Sprintf("spotify%dtrackid", seq),
				},
			},
		}
	case 5:
		record["type"] = "location"
		record["message"] = map[string]interface{}{
			"type":    "location",
			"name":    fmt.Sprintf("Cafe %d", seq),
			"iconSrc": "https://cdn.example.com/icons/pin.png",
			"lat":     37.7749 + rand.Float64(),
			"long":    -122.4194 + rand.Float64(),
		}
	case 6:
		// Mixed-item array under message
		record["message"] = []interface{}{
			map[string]interface{}{"type": "text", "text": fmt.Sprintf("Caption for %d", seq)},
			map[string]interface{}{"type": "image", "src": fmt.Sprintf("https://cdn.example.com/images/%d.jpg", seq)},
		}
	case 7:
		// Bare string message, inherits the post type
		record["message"] = fmt.Sprintf("Plain string body for post %d", seq)
	case 8:
		// Content under body.message with an authorStream fallback
		delete(record, "author")
		record["body"] = map[string]interface{}{
			"message": map[string]interface{}{
				"type": "text",
				"text": fmt.Sprintf("Body-nested content for %d", seq),
			},
			"authorStream": author,
		}
	case 9:
		record["type"] = "mention"
		record["message"] = map[string]interface{}{
			"type":        "mention",
			"author":      author,
			"postID":      fmt.Sprintf("post_%d", seq-1),
			"postMessage": []interface{}{map[string]interface{}{"type": "text", "text": "original text"}},
		}
	}

	if rand.Float64() < 0.3 {
		record["comments"] = []interface{}{
			map[string]interface{}{
				"id":     fmt.Sprintf("comment_%d_0", seq),
				"body":   "Early reply",
				"author": author,
			},
		}
	}

	return &SimulatedPost{ID: id, OwnerID: owner.ID, Record: record}
}

func randomCommentText() string {
	comments := []string{
		"Great post!",
		"Thanks for sharing this.",
		"Where was this taken?",
		"Saving this for later.",
		"Can you share more details?",
		"This made my day.",
		"Seen better, seen worse.",
		"Adding this to my list.",
	}
	return comments[rand.Intn(len(comments))]
}
