package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reminder_webapp/internal/config"
	"reminder_webapp/internal/domain"
	httpServer "reminder_webapp/internal/http"
	"reminder_webapp/internal/http/handlers"
	"reminder_webapp/internal/http/middleware"
	"reminder_webapp/internal/logger"
	"reminder_webapp/internal/monitor"
	"reminder_webapp/internal/motivator"
	"reminder_webapp/internal/notify"
	"reminder_webapp/internal/service"
	"reminder_webapp/internal/storage"
	"reminder_webapp/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	ctx := context.Background()

	blobs, err := storage.Open(ctx, storage.Options{
		Driver:        cfg.StorageDriver,
		DataDir:       cfg.DataDir,
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Fatal("open storage failed", "driver", cfg.StorageDriver, "err", err)
	}
	defer blobs.Close()

	// Day keys are pinned to the process-start local zone so a host
	// timezone change mid-session cannot split buckets.
	loc := time.Local

	tasks := store.NewTaskStore(ctx, blobs, loc)
	history := store.NewHistoryStore(ctx, blobs, loc, cfg.HistoryDays)

	hub := notify.NewHub()
	notifier := notify.Multi{notify.LogNotifier{}, hub}
	logger.Info("notification channel ready", "permission", string(notifier.RequestPermission()))

	tasks.OnComplete(func(t *domain.Task) {
		history.RecordCompletion()
		notifier.Show("Task completed", t.Title, "completed-"+t.ID)
	})

	mon := monitor.New(tasks, history, notifier, cfg.TickInterval)
	mot := motivator.New(cfg.MotivatorURL, cfg.MotivatorKey, cfg.MotivatorModel, cfg.MotivatorTimeout)

	mon.OnOverdue(func(t *domain.Task) {
		msgCtx, cancel := context.WithTimeout(context.Background(), cfg.MotivatorTimeout)
		defer cancel()
		notifier.Show("Get back on track", mot.Message(msgCtx, t.Title), "motivate-"+t.ID)
	})

	mon.Start()
	defer mon.Stop()

	r := gin.Default()

	// CORS for a frontend served from another origin
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandler(tasks, history, mon, mot, hub, cfg.AccessCode)
	httpServer.RegisterRoutes(r, h, blobs, version, cfg.APIRateLimit, cfg.APIRateWindow)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	mon.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "err", err)
	}

	logger.Info("server exited")
}
