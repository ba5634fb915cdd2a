package handlers

import (
	"net/http"

	"heron-feed/internal/models"
	"heron-feed/internal/state"
)

// SessionRequest identifies the user opening a session.
type SessionRequest struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
	AvatarSrc   string `json:"avatarSrc,omitempty"`
}

// SessionResponse carries the signed session token.
type SessionResponse struct {
	Token string `json:"token"`
}

// HandleSession opens a session: the given profile becomes the engine's
// current user and a signed token for subsequent requests is returned.
func (s *Server) HandleSession(w http.ResponseWriter, r *http.Request) {
	s.Metrics.IncrementRequests()
	var req SessionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ID == "" {
		http.Error(w, "Profile id is required", http.StatusBadRequest)
		return
	}

	profile := models.Author{
		ID:          req.ID,
		DisplayName: req.DisplayName,
		Name:        req.Name,
		AvatarSrc:   req.AvatarSrc,
	}
	token, err := s.Sessions.GenerateToken(profile)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	s.Engine.Store().SetState(state.Partial{Profile: &profile})
	s.writeJSON(w, SessionResponse{Token: token})
}
