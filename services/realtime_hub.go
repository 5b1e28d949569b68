package services

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient is one connected websocket for a user. Writes are serialized
// through Send because the hub, the ping loop and the session all write to
// the same connection.
type WSClient struct {
	UserID uint
	Conn   *websocket.Conn

	writeMu sync.Mutex
}

// Send marshals the payload as a JSON text frame. Write errors are returned
// so callers can drop the client.
func (c *WSClient) Send(payload any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(payload)
}

// Ping sends a ping control frame, serialized with data frames.
func (c *WSClient) Ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

// RealtimeHub fans payloads out to every websocket a user has open, e.g.
// totals updates after a log mutation and freshly created alerts.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Broadcast sends the payload to all of the user's connected clients. A
// payload arriving for a user with no connections is dropped silently.
func (h *RealtimeHub) Broadcast(userID uint, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Send(payload)
	}
}
