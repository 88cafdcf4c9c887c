package notification

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is a real-time notification pushed to connected staff dashboards.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

const (
	EventBookingCreated     = "booking_created"
	EventBookingCancelled   = "booking_cancelled"
	EventBookingRescheduled = "booking_rescheduled"
	EventPaymentReceived    = "payment_received"
)

// client wraps a socket with a write lock. gorilla/websocket allows only one
// concurrent writer per connection; broadcasts and keepalive pings share it.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub fans events out to every connected staff socket. One connection per
// user; a reconnect replaces the old socket.
type Hub struct {
	connections map[int64]*client
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) *client {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[userID]; exists && old.conn != nil {
		_ = old.conn.Close()
	}

	cl := &client{conn: conn}
	h.connections[userID] = cl
	return cl
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cl, exists := h.connections[userID]; exists {
		if cl.conn != nil {
			_ = cl.conn.Close()
		}
		delete(h.connections, userID)
	}
}

// Broadcast writes the event to every connection, dropping sockets that fail.
func (h *Hub) Broadcast(event *Event) {
	h.mutex.RLock()
	clients := make(map[int64]*client, len(h.connections))
	for id, cl := range h.connections {
		clients[id] = cl
	}
	h.mutex.RUnlock()

	for userID, cl := range clients {
		if cl.conn == nil {
			continue
		}
		if err := cl.writeJSON(event); err != nil {
			h.Unregister(userID)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, cl := range h.connections {
		if cl.conn != nil {
			_ = cl.conn.Close()
		}
		delete(h.connections, userID)
	}
}
