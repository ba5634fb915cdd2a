package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"heron-feed/internal/content"
	"heron-feed/internal/engine/actors"
	"heron-feed/internal/middleware"
	"heron-feed/internal/state"
)

// RenderPostRequest carries the raw post record to render.
type RenderPostRequest struct {
	Post       json.RawMessage `json:"post"`
	Minimal    bool            `json:"minimal,omitempty"`
	NoComments bool            `json:"noComments,omitempty"`
}

type LikeRequest struct {
	PostID string `json:"postId"`
}

type CommentRequest struct {
	PostID string `json:"postId"`
	Text   string `json:"text"`
	// ConfirmKey marks a quick-submit triggered by the confirm key; it
	// follows the same path as an explicit submit.
	ConfirmKey bool `json:"confirmKey,omitempty"`
}

type ReplyRequest struct {
	PostID     string `json:"postId"`
	AuthorName string `json:"authorName"`
}

type DeleteRequest struct {
	PostID    string `json:"postId"`
	Confirmed bool   `json:"confirmed"`
}

type GoAuthorRequest struct {
	PostID         string `json:"postId"`
	InlineAuthorID string `json:"inlineAuthorId,omitempty"`
}

// adoptProfile merges the session profile into the shared state container.
func (s *Server) adoptProfile(r *http.Request) {
	if profile, ok := middleware.GetProfileFromContext(r.Context()); ok {
		p := profile
		s.Engine.Store().SetState(state.Partial{Profile: &p})
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(out); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return false
	}
	return true
}

// HandleRenderPost binds the posted record to its controller and returns
// the rendered tree with the effective view state.
func (s *Server) HandleRenderPost(w http.ResponseWriter, r *http.Request) {
	s.Metrics.IncrementRequests()
	var req RenderPostRequest
	if !s.decode(w, r, &req) {
		return
	}
	post, err := content.DecodePost(req.Post)
	if err != nil {
		http.Error(w, "Invalid post record", http.StatusBadRequest)
		return
	}
	if post.ID == "" {
		http.Error(w, "Post id is required", http.StatusBadRequest)
		return
	}
	s.adoptProfile(r)

	if _, err := s.ask(post.ID, &actors.BindPostMsg{Post: post}); err != nil {
		s.writeError(w, err)
		return
	}
	result, err := s.ask(post.ID, &actors.RenderPostMsg{Minimal: req.Minimal, NoComments: req.NoComments})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result)
}

// HandleToggleLike flips the like state of a post. The response reflects
// the optimistic overlay immediately; the network confirmation follows
// asynchronously.
func (s *Server) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	s.Metrics.IncrementRequests()
	var req LikeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.adoptProfile(r)

	result, err := s.ask(req.PostID, &actors.ToggleLikeMsg{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result)
}

// HandleComment sets the draft and submits it in one round trip.
func (s *Server) HandleComment(w http.ResponseWriter, r *http.Request) {
	s.Metrics.IncrementRequests()
	var req CommentRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.adoptProfile(r)

	if _, err := s.ask(req.PostID, &actors.SetCommentDraftMsg{Text: req.Text}); err != nil {
		s.writeError(w, err)
		return
	}
	result, err := s.ask(req.PostID, &actors.SubmitCommentMsg{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result)
}

// HandleReply prefixes the comment draft with a mention of an author.
func (s *Server) HandleReply(w http.ResponseWriter, r *http.Request) {
	s.Metrics.IncrementRequests()
	var req ReplyRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.ask(req.PostID, &actors.ReplyToMsg{AuthorName: req.AuthorName})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result)
}

// HandleDelete issues a confirmed delete.
func (s *Server) HandleDelete(w http.ResponseWriter, r *http.Request) {
	s.Metrics.IncrementRequests()
	var req DeleteRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.adoptProfile(r)

	result, err := s.ask(req.PostID, &actors.DeletePostMsg{Confirmed: req.Confirmed})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result)
}

// HandleGoAuthor emits a profile navigation event for the post's author.
func (s *Server) HandleGoAuthor(w http.ResponseWriter, r *http.Request) {
	s.Metrics.IncrementRequests()
	var req GoAuthorRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.adoptProfile(r)

	result, err := s.ask(req.PostID, &actors.GoAuthorMsg{InlineAuthorID: req.InlineAuthorID})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result)
}

// HandleViewState returns the effective displayed state of a post.
func (s *Server) HandleViewState(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("id")
	if postID == "" {
		http.Error(w, "id query parameter is required", http.StatusBadRequest)
		return
	}
	result, err := s.ask(postID, &actors.GetViewStateMsg{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result)
}
