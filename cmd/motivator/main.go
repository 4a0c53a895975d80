package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reminder_webapp/internal/config"
	"reminder_webapp/internal/http/handlers"
	"reminder_webapp/internal/logger"
	"reminder_webapp/internal/motivator"

	"github.com/gin-gonic/gin"
)

// Companion single-endpoint server: proxies chat-completion requests for
// overdue tasks so the frontend never holds the upstream API key.
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	client := motivator.New(cfg.MotivatorURL, cfg.MotivatorKey, cfg.MotivatorModel, cfg.MotivatorTimeout)

	r := gin.Default()
	r.POST("/api/motivate", handlers.Motivate(client))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	port := os.Getenv("MOTIVATOR_PORT")
	if port == "" {
		port = "8081"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Info("motivator proxy started", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "err", err)
	}
}
