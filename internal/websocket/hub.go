package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is one message pushed to a user's sockets: either a user-visible
// notification (mutation failures) or a navigation target (author
// deep-links).
type Event struct {
	Kind    string `json:"kind"` // "notify" or "go"
	Message string `json:"message,omitempty"`
	URL     string `json:"url,omitempty"`
}

// eventToSend pairs an event with its target user.
type eventToSend struct {
	TargetUserID string
	Payload      []byte
}

// Hub maintains the set of active clients and pushes events to them.
type Hub struct {
	// Registered clients. Maps user ID to a set of active client connections.
	Clients map[string]map[*Client]bool

	// Channel for sending events to specific users.
	sendDirect chan *eventToSend

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Mutex to protect concurrent access to the clients map.
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		sendDirect: make(chan *eventToSend, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[string]map[*Client]bool),
	}
}

// Run starts the hub's processing loop.
func (h *Hub) Run() {
	log.Println("WebSocket hub started")
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.Clients[client.UserID]; !ok {
				h.Clients[client.UserID] = make(map[*Client]bool)
			}
			h.Clients[client.UserID][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if conns, ok := h.Clients[client.UserID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.Send)
					if len(conns) == 0 {
						delete(h.Clients, client.UserID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.sendDirect:
			h.mu.RLock()
			conns := h.Clients[event.TargetUserID]
			for client := range conns {
				select {
				case client.Send <- event.Payload:
				default:
					// Slow consumer; drop the connection.
					close(client.Send)
					delete(conns, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) push(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Hub: failed to encode event: %v", err)
		return
	}
	h.sendDirect <- &eventToSend{TargetUserID: userID, Payload: payload}
}

// Notify pushes a user-visible notification.
func (h *Hub) Notify(userID string, message string) {
	h.push(userID, Event{Kind: "notify", Message: message})
}

// Go pushes a navigation target.
func (h *Hub) Go(userID string, url string) {
	h.push(userID, Event{Kind: "go", URL: url})
}
