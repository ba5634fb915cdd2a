package handlers

import (
	"log"
	"net/http"

	ws "github.com/gorilla/websocket"

	"heron-feed/internal/middleware"
	"heron-feed/internal/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and registers the client with the
// hub so notifications and navigation events reach this session.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.GetProfileFromContext(r.Context())
	if !ok || profile.ID == "" {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed for user %s: %v", profile.ID, err)
		return
	}

	client := &websocket.Client{
		Hub:    s.Hub,
		UserID: profile.ID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
