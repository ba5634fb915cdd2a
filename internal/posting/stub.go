package posting

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"heron-feed/internal/models"
)

// Call records one invocation against the stub.
type Call struct {
	Op     string
	PostID string
	Body   string
}

// Stub is an in-memory Service for tests and the simulator. Each operation
// succeeds unless a scripted error is set for it.
type Stub struct {
	mu    sync.Mutex
	calls []Call

	LikeErr    error
	UnlikeErr  error
	CommentErr error
	DeleteErr  error

	// CommentID overrides the id assigned to returned comments.
	CommentID string
}

var _ Service = (*Stub)(nil)

func (s *Stub) record(op, postID, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: op, PostID: postID, Body: body})
}

// Calls returns a copy of everything recorded so far.
func (s *Stub) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Stub) Like(_ context.Context, postID string) error {
	s.record("like", postID, "")
	return s.LikeErr
}

func (s *Stub) Unlike(_ context.Context, postID string) error {
	s.record("unlike", postID, "")
	return s.UnlikeErr
}

func (s *Stub) Comment(_ context.Context, postID string, body string) (*models.Comment, error) {
	s.record("comment", postID, body)
	if s.CommentErr != nil {
		return nil, s.CommentErr
	}
	id := s.CommentID
	if id == "" {
		id = uuid.NewString()
	}
	return &models.Comment{ID: id, Body: body}, nil
}

func (s *Stub) DeletePost(_ context.Context, postID string) error {
	s.record("delete", postID, "")
	return s.DeleteErr
}
