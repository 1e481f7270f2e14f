package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modqueue/backend/config"
	"github.com/modqueue/backend/internal/events"
	"github.com/modqueue/backend/internal/handlers"
	"github.com/modqueue/backend/internal/middleware"
	"github.com/modqueue/backend/internal/notifier"
	"github.com/modqueue/backend/internal/store"
	"github.com/modqueue/backend/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Seed the in-memory stores from the fixture collection
	posts := store.FixturePosts()
	moderation := store.NewModerationStore(posts)
	notifications := store.NewNotificationStore()
	log.Printf("Seeded moderation queue with %d posts", len(posts))

	// Connect to Redis for decision events (optional)
	var publisher *events.Publisher
	if cfg.Redis.Enabled {
		publisher, err = events.NewPublisher(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v", err)
			log.Println("Running without Redis - decision events will not be published")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// WebSocket hub pushing state and toasts to dashboards
	hub := websocket.NewHub()
	go hub.Run()
	wsHandler := websocket.NewHandler(hub, moderation, notifications, cfg.CORS.AllowedOrigins)

	// Toast expiry scheduler
	scheduler := notifier.NewScheduler(
		notifications,
		hub,
		time.Duration(cfg.Toast.DefaultSeconds)*time.Second,
		time.Duration(cfg.Toast.UndoSeconds)*time.Second,
	)
	defer scheduler.Stop()

	// Initialize handlers
	modHandler := handlers.NewModerationHandler(moderation, notifications, scheduler, hub, publisher)
	notifHandler := handlers.NewNotificationHandler(notifications, scheduler, hub)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(cfg.API.RateLimitPerSec)
	rateLimiter.Cleanup()

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// WebSocket endpoint
	router.GET("/ws", wsHandler.HandleWebSocket)

	api := router.Group("/api/v1")
	{
		// Read models
		api.GET("/posts", modHandler.GetPosts)
		api.GET("/posts/:id", modHandler.GetPost)
		api.GET("/state", modHandler.GetState)
		api.GET("/notifications", notifHandler.GetNotifications)
		api.GET("/clients", wsHandler.GetConnectedClients)

		// Intents
		intents := api.Group("")
		intents.Use(middleware.RateLimitMiddleware(rateLimiter))
		{
			intents.POST("/filter", modHandler.SetFilter)
			intents.POST("/page", modHandler.ChangePage)
			intents.POST("/selection/toggle", modHandler.ToggleSelection)
			intents.POST("/selection/all", modHandler.SelectAll)
			intents.DELETE("/selection", modHandler.ClearSelection)
			intents.POST("/posts/:id/approve", modHandler.Approve)
			intents.POST("/posts/:id/reject", modHandler.Reject)
			intents.POST("/batch/approve", modHandler.BatchApprove)
			intents.POST("/batch/reject", modHandler.BatchReject)
			intents.POST("/modal/open", modHandler.OpenModal)
			intents.POST("/modal/close", modHandler.CloseModal)
			intents.POST("/modal/navigate", modHandler.NavigateModal)
			intents.POST("/undo/:id", modHandler.Undo)
			intents.POST("/keyboard", modHandler.KeyEvent)
			intents.POST("/notifications", notifHandler.AddToast)
			intents.DELETE("/notifications/:id", notifHandler.RemoveToast)
			intents.DELETE("/notifications", notifHandler.ClearAll)
		}
	}

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Starting moderation review server on %s (env: %s)", addr, cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
