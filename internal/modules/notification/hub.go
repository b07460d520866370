package notification

import (
	"sync"
	"time"

	"shesafe/internal/domain"
	"shesafe/internal/pkg/metrics"
)

const writeWait = 5 * time.Second

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type client struct {
	conn Conn
	role domain.UserRole
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Hub keeps one live connection per user. A new connection replaces the old one.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]*client)}
}

func (h *Hub) Register(userID int64, role domain.UserRole, conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, ok := h.clients[userID]; ok {
		_ = old.conn.Close()
	} else {
		metrics.WSConnections.Inc()
	}
	h.clients[userID] = &client{conn: conn, role: role}
}

// Unregister drops userID only if conn is still the registered connection.
func (h *Hub) Unregister(userID int64, conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	c, ok := h.clients[userID]
	if !ok || c.conn != conn {
		return
	}
	_ = c.conn.Close()
	delete(h.clients, userID)
	metrics.WSConnections.Dec()
}

func (h *Hub) SendToUser(userID int64, message any) bool {
	h.mutex.RLock()
	c, ok := h.clients[userID]
	h.mutex.RUnlock()

	if !ok {
		return false
	}
	if err := c.send(message); err != nil {
		h.Unregister(userID, c.conn)
		return false
	}
	return true
}

// SendToRole delivers message to every connected user with role and returns how many got it.
func (h *Hub) SendToRole(role domain.UserRole, message any) int {
	h.mutex.RLock()
	targets := make([]int64, 0, len(h.clients))
	for id, c := range h.clients {
		if c.role == role {
			targets = append(targets, id)
		}
	}
	h.mutex.RUnlock()

	delivered := 0
	for _, id := range targets {
		if h.SendToUser(id, message) {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, ok := h.clients[userID]
	return ok
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, id)
		metrics.WSConnections.Dec()
	}
}
