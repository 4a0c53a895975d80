package notify

import (
	"encoding/json"
	"sync"

	"reminder_webapp/internal/logger"

	"github.com/gorilla/websocket"
)

// Frame is the wire shape pushed to browser clients.
type Frame struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

// Hub fans notifications out to every connected websocket client. With no
// clients connected the channel reports unavailable and Show is a silent
// no-op, matching the side channel's contract.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register attaches a freshly upgraded connection and starts its pumps.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := newClient(h, conn)

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()

	logger.Debug("ws client connected", "clients", h.ClientCount())
	return c
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// ClientCount reports connected clients, for health/readiness output.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) RequestPermission() Permission {
	if h.ClientCount() == 0 {
		return PermissionUnavailable
	}
	return PermissionGranted
}

// Show broadcasts the notification frame. Slow clients get dropped rather
// than blocking the monitor's scan.
func (h *Hub) Show(title, body, dedupTag string) {
	data, err := json.Marshal(Frame{Type: "notification", Title: title, Body: body, Tag: dedupTag})
	if err != nil {
		logger.Error("marshal notification frame failed", "err", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			logger.Warn("ws client send buffer full, dropping client")
			c.close()
		}
	}
}
