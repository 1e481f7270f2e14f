package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/modqueue/backend/internal/models"
)

// Hub maintains the set of connected dashboard clients and broadcasts
// state and toast events to them
type Hub struct {
	// Registered clients keyed by connection id
	clients map[uuid.UUID]*Client

	// Outbound events to all clients
	broadcast chan []byte

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for thread-safe operations
	mu sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()

			log.Printf("Dashboard client connected: %s", client.id)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()

			log.Printf("Dashboard client disconnected: %s", client.id)

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client.id)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastEvent sends an event envelope to every connected client
func (h *Hub) BroadcastEvent(event string, payload interface{}) {
	data, err := json.Marshal(models.WSEvent{Event: event, Payload: payload})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	h.broadcast <- data
}

// SendToClient sends an event to a single client
func (h *Hub) SendToClient(id uuid.UUID, event string, payload interface{}) error {
	data, err := json.Marshal(models.WSEvent{Event: event, Payload: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	client, ok := h.clients[id]
	h.mu.RUnlock()

	if ok {
		select {
		case client.send <- data:
		default:
			// Client's send channel is full, skip
		}
	}

	return nil
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
