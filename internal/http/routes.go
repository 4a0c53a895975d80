package http

import (
	"time"

	"reminder_webapp/internal/http/handlers"
	"reminder_webapp/internal/http/middleware"
	"reminder_webapp/internal/storage"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the full API surface on r.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, blobs storage.BlobStore, version string, apiRateLimit int, apiRateWindow time.Duration) {
	healthHandler := handlers.NewHealthHandler(blobs, h.Hub, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// WebSocket notification channel
	r.GET("/ws", middleware.JWT(), h.WS)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h)

	// Legacy /api routes (kept for older frontends)
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(api, h)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	// Session
	api.POST("/session", h.CreateSession)

	// Tasks
	api.GET("/tasks", middleware.JWT(), h.ListTasks)
	api.POST("/tasks", middleware.JWT(), h.CreateTask)
	api.PATCH("/tasks/:id/complete", middleware.JWT(), h.CompleteTask)
	api.DELETE("/tasks/:id", middleware.JWT(), h.DeleteTask)

	// Dashboard stats and day-bucket history
	api.GET("/stats", middleware.JWT(), h.Stats)
	api.GET("/history", middleware.JWT(), h.GetHistory)
	api.DELETE("/history", middleware.JWT(), h.ClearHistory)

	// Motivational-message proxy
	api.POST("/motivate", middleware.JWT(), h.Motivate)
}
