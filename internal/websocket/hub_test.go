package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegisteredClient(t *testing.T, h *Hub, userID string) *Client {
	t.Helper()
	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 16)}
	h.Register <- client
	return client
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case payload := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHubNotify(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newRegisteredClient(t, h, "u1")
	h.Notify("u1", "Error: service down")

	event := receiveEvent(t, client)
	assert.Equal(t, "notify", event.Kind)
	assert.Equal(t, "Error: service down", event.Message)
	assert.Empty(t, event.URL)
}

func TestHubGo(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newRegisteredClient(t, h, "u1")
	h.Go("u1", "/profile/u2")

	event := receiveEvent(t, client)
	assert.Equal(t, "go", event.Kind)
	assert.Equal(t, "/profile/u2", event.URL)
}

func TestHubTargetsOnlyTheAddressedUser(t *testing.T) {
	h := NewHub()
	go h.Run()

	target := newRegisteredClient(t, h, "u1")
	other := newRegisteredClient(t, h, "u2")

	h.Notify("u1", "for u1 only")
	receiveEvent(t, target)

	select {
	case <-other.Send:
		t.Fatal("event leaked to the wrong user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubFansOutToAllUserConnections(t *testing.T) {
	h := NewHub()
	go h.Run()

	first := newRegisteredClient(t, h, "u1")
	second := newRegisteredClient(t, h, "u1")

	h.Notify("u1", "both tabs")
	receiveEvent(t, first)
	receiveEvent(t, second)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newRegisteredClient(t, h, "u1")
	h.Unregister <- client

	assert.Eventually(t, func() bool {
		select {
		case _, open := <-client.Send:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
