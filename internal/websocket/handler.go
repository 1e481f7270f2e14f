package websocket

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/modqueue/backend/internal/models"
	"github.com/modqueue/backend/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, validate origin properly
		return true
	},
}

// Handler handles WebSocket upgrade requests from dashboards
type Handler struct {
	hub            *Hub
	moderation     *store.ModerationStore
	notifications  *store.NotificationStore
	allowedOrigins []string
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, moderation *store.ModerationStore, notifications *store.NotificationStore, allowedOrigins []string) *Handler {
	return &Handler{
		hub:            hub,
		moderation:     moderation,
		notifications:  notifications,
		allowedOrigins: allowedOrigins,
	}
}

// HandleWebSocket upgrades the connection, registers the client and sends
// it the current state so the dashboard renders without a separate fetch
func (h *Handler) HandleWebSocket(c *gin.Context) {
	// Validate origin using configured allowed origins if provided
	if len(h.allowedOrigins) > 0 {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return false
			}
			// allow exact match or wildcard like *.example.com
			for _, pattern := range h.allowedOrigins {
				if matchOrigin(pattern, origin) {
					return true
				}
			}
			return false
		}
	}

	// Upgrade connection
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := NewClient(h.hub, conn)

	// Queue the current read models before the pumps start, so the
	// dashboard renders without a separate fetch
	client.enqueue(models.EventStateChanged, h.moderation.Snapshot())
	for _, toast := range h.notifications.Snapshot() {
		client.enqueue(models.EventToastAdded, toast)
	}

	h.hub.register <- client

	// Start client pumps
	go client.WritePump()
	go client.ReadPump()
}

// GetConnectedClients returns the connected dashboard count (for admin)
func (h *Handler) GetConnectedClients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.hub.ClientCount()})
}

// matchOrigin supports exact matches or wildcard patterns like *.example.com
func matchOrigin(pattern, origin string) bool {
	if pattern == origin {
		return true
	}
	// simple wildcard support: pattern starts with *.
	if strings.HasPrefix(pattern, "*.") {
		originHost := origin
		if u, err := url.Parse(origin); err == nil {
			originHost = u.Hostname()
		}
		patHost := strings.TrimPrefix(pattern, "*.")
		if strings.HasSuffix(originHost, patHost) {
			return true
		}
	}
	return false
}
