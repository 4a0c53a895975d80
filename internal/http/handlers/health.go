package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"reminder_webapp/internal/notify"
	"reminder_webapp/internal/storage"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	blobs     storage.BlobStore
	hub       *notify.Hub
	startTime time.Time
	version   string
}

func NewHealthHandler(blobs storage.BlobStore, hub *notify.Hub, version string) *HealthHandler {
	return &HealthHandler{
		blobs:     blobs,
		hub:       hub,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness returns simple alive status (for k8s liveness probe)
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness returns detailed health status (for k8s readiness probe)
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	// Storage check: a probe read; missing blob is healthy, an error is not
	if _, err := h.blobs.Load(ctx, "tasks"); err != nil && err != storage.ErrNotFound {
		checks["storage"] = "unhealthy: " + err.Error()
		allHealthy = false
	} else {
		checks["storage"] = "healthy"
	}

	checks["ws_clients"] = fmt.Sprintf("%d", h.hub.ClientCount())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	checks["memory_alloc_mb"] = formatMB(m.Alloc)

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// Health is a combined endpoint for basic health checks
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

func formatMB(bytes uint64) string {
	mb := float64(bytes) / 1024 / 1024
	return fmt.Sprintf("%.2f", mb)
}
