package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"heron-feed/internal/engine"
	"heron-feed/internal/middleware"
	"heron-feed/internal/utils"
	"heron-feed/internal/websocket"
)

// Server holds all gateway dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	Hub            *websocket.Hub
	Sessions       *middleware.Sessions
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	metrics *utils.MetricsCollector,
	hub *websocket.Hub,
	sessions *middleware.Sessions,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Metrics:        metrics,
		Hub:            hub,
		Sessions:       sessions,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// Routes builds the gateway mux with session and CORS middleware applied.
func (s *Server) Routes(corsConfig *middleware.CORSConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/session", s.HandleSession)
	mux.HandleFunc("/post/render", s.HandleRenderPost)
	mux.HandleFunc("/post/like", s.HandleToggleLike)
	mux.HandleFunc("/post/comment", s.HandleComment)
	mux.HandleFunc("/post/reply", s.HandleReply)
	mux.HandleFunc("/post/author", s.HandleGoAuthor)
	mux.HandleFunc("/post/delete", s.HandleDelete)
	mux.HandleFunc("/post/state", s.HandleViewState)
	mux.HandleFunc("/ws", s.HandleWebSocket)

	return middleware.CORSMiddleware(corsConfig)(s.Sessions.Auth(mux))
}

// ask sends a message to the controller for postID and waits for the reply.
func (s *Server) ask(postID string, msg any) (any, error) {
	pid := s.Engine.ControllerFor(postID)
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewActorTimeoutError("PostActor")
	}
	if appErr, ok := result.(*utils.AppError); ok {
		return nil, appErr
	}
	return result, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.Metrics.IncrementErrors()
	if appErr, ok := err.(*utils.AppError); ok {
		http.Error(w, appErr.Message, utils.AppErrorToHTTPStatus(appErr.Code))
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// HandleHealth reports engine status.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"status":      "ok",
		"controllers": s.Engine.ControllerCount(),
		"uptime":      s.Metrics.Uptime().String(),
	})
}
