package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"ground-experiment/groundlink/internal/logging"
	"ground-experiment/groundlink/internal/metrics"
	"ground-experiment/groundlink/internal/models/dtos"
)

// client wraps a live connection with a write lock; gorilla connections do
// not allow concurrent writers
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub is the process-wide broadcast channel. Every accepted state-changing
// operation produces one typed event delivered best-effort, at most once,
// to every connection open at emit time. There is no replay and no backlog;
// a late subscriber reconciles by re-querying the HTTP API.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*client

	metrics *metrics.MetricsRegistry
}

// NewHub creates an empty connection registry. The metrics registry may be
// nil in tests.
func NewHub(metricsReg *metrics.MetricsRegistry) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
		metrics: metricsReg,
	}
}

// Register adds a connection to the registry
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = &client{conn: conn}
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.WSClientsConnected.Set(float64(count))
	}
	logging.Debug("WebSocket client registered", "clients", count)
}

// Unregister removes a connection and closes it. Safe to call twice.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	_, present := h.clients[conn]
	delete(h.clients, conn)
	count := len(h.clients)
	h.mu.Unlock()

	if !present {
		return
	}
	conn.Close()

	if h.metrics != nil {
		h.metrics.WSClientsConnected.Set(float64(count))
	}
	logging.Debug("WebSocket client unregistered", "clients", count)
}

// Broadcast fans an event out to every currently registered connection.
// A failed send drops the dead connection and never affects delivery to
// the others.
func (h *Hub) Broadcast(event dtos.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logging.Error("Failed to marshal broadcast event", "type", event.Type, "error", err.Error())
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	var dead []*client
	for _, c := range targets {
		if err := c.send(payload); err != nil {
			dead = append(dead, c)
			if h.metrics != nil {
				h.metrics.WSSendFailures.Inc()
			}
			logging.Warn("Dropping dead WebSocket client", "type", event.Type, "error", err.Error())
		}
	}

	for _, c := range dead {
		h.Unregister(c.conn)
	}

	if h.metrics != nil {
		h.metrics.WSEventsBroadcast.WithLabelValues(event.Type).Inc()
	}
}

// ClientCount returns the number of live connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll closes every connection; used on shutdown
func (h *Hub) CloseAll() {
	h.mu.Lock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]*client)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.WSClientsConnected.Set(0)
	}
}
