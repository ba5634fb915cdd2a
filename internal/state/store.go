// Package state holds the process-wide shared state container: the current
// profile and the optimistic like overlay. It replaces an implicit global
// with an explicitly injected handle; controllers receive a *Store at
// construction and never reach for package-level state.
package state

import (
	"sync"

	"heron-feed/internal/models"
)

// State is a snapshot of the shared container.
type State struct {
	// Profile is the current user identity.
	Profile *models.Author

	// LocalLikes overlays unconfirmed like decisions over server-reported
	// like state, keyed by post id. Entries persist until explicitly
	// cleared; they are never overwritten by async responses.
	LocalLikes map[string]bool
}

// Partial is a partial state for SetState. Nil fields are left untouched;
// non-nil fields replace the current value wholesale (replace-by-merge at
// the top level).
type Partial struct {
	Profile    *models.Author
	LocalLikes map[string]bool
}

// Store is the shared state container. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns an empty container.
func NewStore() *Store {
	return &Store{state: State{LocalLikes: make(map[string]bool)}}
}

// GetState returns a snapshot. The like overlay is copied, so callers can
// mutate the returned map and merge it back through SetState.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	likes := make(map[string]bool, len(s.state.LocalLikes))
	for id, liked := range s.state.LocalLikes {
		likes[id] = liked
	}
	return State{Profile: s.state.Profile, LocalLikes: likes}
}

// SetState merges a partial state at the top level.
func (s *Store) SetState(partial Partial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if partial.Profile != nil {
		s.state.Profile = partial.Profile
	}
	if partial.LocalLikes != nil {
		s.state.LocalLikes = partial.LocalLikes
	}
}

// SetLocalLike records a local like decision for a post.
func (s *Store) SetLocalLike(postID string, liked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LocalLikes[postID] = liked
}

// ClearLocalLike drops the overlay entry for a post, restoring server state
// as the effective truth.
func (s *Store) ClearLocalLike(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state.LocalLikes, postID)
}

// EffectiveLiked resolves the displayed like state: the overlay entry when
// present, else the server-reported value.
func (s *Store) EffectiveLiked(postID string, serverLiked bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if liked, ok := s.state.LocalLikes[postID]; ok {
		return liked
	}
	return serverLiked
}

// EffectiveLikeCount resolves the displayed like count: the server count,
// plus one only while the overlay marks "liked" and the server has not yet
// confirmed it. Once the server reports likedByMe the overlay no longer
// contributes, so the count is never double-incremented.
func (s *Store) EffectiveLikeCount(postID string, serverCount int, serverLiked bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.LocalLikes[postID] && !serverLiked {
		return serverCount + 1
	}
	return serverCount
}
