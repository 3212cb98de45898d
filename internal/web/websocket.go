package web

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/roasbeef/modqueue/internal/review"
)

// WebSocket message types for real-time queue updates.
const (
	WSMsgTypeReviewableCreated   = "reviewable_created"
	WSMsgTypeReviewablePerformed = "reviewable_performed"
	WSMsgTypePendingCount        = "pending_count"
	WSMsgTypeConnected           = "connected"
	WSMsgTypePong                = "pong"
)

// WSMessage represents a WebSocket message sent to clients.
type WSMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Hub maintains the set of active WebSocket clients and broadcasts queue
// events to connected moderator dashboards.
type Hub struct {
	// Registered clients.
	clients map[*WSClient]struct{}

	// Register requests from clients.
	register chan *WSClient

	// Unregister requests from clients.
	unregister chan *WSClient

	// Broadcast messages to all clients.
	broadcast chan *WSMessage

	// Server reference for data fetching.
	server *Server

	// Mutex for thread-safe access.
	mu sync.RWMutex

	// Context for shutdown.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a new WebSocket hub.
func NewHub(server *Server) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*WSClient]struct{}),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		broadcast:  make(chan *WSMessage, 256),
		server:     server,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	go h.runPeriodicUpdates()

	for {
		select {
		case <-h.ctx.Done():
			// Clean up all clients on shutdown.
			h.mu.Lock()
			for client := range h.clients {
				client.Close()
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			log.Printf("WebSocket: Client registered (total=%d)",
				h.clientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()
			log.Printf("WebSocket: Client unregistered (total=%d)",
				h.clientCount())

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				client.Send(msg)
			}
			h.mu.RUnlock()
		}
	}
}

// Stop shuts down the hub.
func (h *Hub) Stop() {
	h.cancel()
}

// clientCount returns the number of connected clients.
func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues a message for all connected clients.
func (h *Hub) Broadcast(msg *WSMessage) {
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("WebSocket: Broadcast buffer full, dropping %s",
			msg.Type)
	}
}

// BroadcastReviewableCreated announces a new queue entry.
func (h *Hub) BroadcastReviewableCreated(reviewableID int64, kind string) {
	h.Broadcast(&WSMessage{
		Type: WSMsgTypeReviewableCreated,
		Payload: map[string]any{
			"reviewable_id": reviewableID,
			"type":          kind,
		},
	})
}

// BroadcastReviewablePerformed announces a performed action.
func (h *Hub) BroadcastReviewablePerformed(reviewableID int64,
	actionID string, success bool) {

	h.Broadcast(&WSMessage{
		Type: WSMsgTypeReviewablePerformed,
		Payload: map[string]any{
			"reviewable_id": reviewableID,
			"action":        actionID,
			"success":       success,
		},
	})
}

// runPeriodicUpdates pushes the pending queue depth to all clients.
func (h *Hub) runPeriodicUpdates() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.broadcastPendingCount()
		}
	}
}

// broadcastPendingCount sends the current pending count to all clients.
func (h *Hub) broadcastPendingCount() {
	if h.server == nil || h.clientCount() == 0 {
		return
	}

	count, err := h.server.storage.CountReviewablesByStatus(
		h.ctx, int64(review.StatusPending),
	)
	if err != nil {
		return
	}

	h.Broadcast(&WSMessage{
		Type: WSMsgTypePendingCount,
		Payload: map[string]any{
			"pending": count,
		},
	})
}

// upgrader upgrades HTTP connections to the WebSocket protocol.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWebSocket handles WebSocket connections at /ws.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "WebSocket not available",
			http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewWSClient(s.hub, conn)
	s.hub.register <- client

	client.Send(&WSMessage{
		Type: WSMsgTypeConnected,
		Payload: map[string]any{
			"time": time.Now().UTC().Format(time.RFC3339),
		},
	})

	go client.writePump()
	go client.readPump()
}
