package config

import (
	"os"
	"strconv"
	"time"

	"reminder_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// Auth. Empty JWTSecret disables token auth entirely (local use).
	JWTSecret  string
	AccessCode string

	// Storage backend selection
	StorageDriver string
	DataDir       string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Overdue monitor
	TickInterval time.Duration
	HistoryDays  int

	// Motivational-message upstream
	MotivatorURL     string
	MotivatorKey     string
	MotivatorModel   string
	MotivatorTimeout time.Duration

	// API rate limiting
	APIRateLimit  int
	APIRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from env, with .env as a convenience overlay.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	accessCode := os.Getenv("ACCESS_CODE")
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET is not set, API auth disabled")
	} else if accessCode == "" {
		logger.Fatal("ACCESS_CODE must be set when JWT_SECRET is set")
	}

	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "file"
	}
	if driver == "postgres" && os.Getenv("DATABASE_URL") == "" {
		logger.Fatal("DATABASE_URL is not set")
	}
	if driver == "redis" && os.Getenv("REDIS_ADDR") == "" {
		logger.Fatal("REDIS_ADDR is not set")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	tick := 60 * time.Second
	if v := os.Getenv("TICK_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tick = time.Duration(n) * time.Second
		}
	}

	historyDays := 30
	if v := os.Getenv("HISTORY_KEEP_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			historyDays = n
		}
	}

	motivatorTimeout := 10 * time.Second
	if v := os.Getenv("MOTIVATOR_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			motivatorTimeout = time.Duration(n) * time.Second
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:          port,
		JWTSecret:        jwtSecret,
		AccessCode:       accessCode,
		StorageDriver:    driver,
		DataDir:          dataDir,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          redisDB,
		TickInterval:     tick,
		HistoryDays:      historyDays,
		MotivatorURL:     os.Getenv("MOTIVATOR_API_URL"),
		MotivatorKey:     os.Getenv("MOTIVATOR_API_KEY"),
		MotivatorModel:   os.Getenv("MOTIVATOR_MODEL"),
		MotivatorTimeout: motivatorTimeout,
		APIRateLimit:     apiRateLimit,
		APIRateWindow:    apiRateWindow,
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogJSON:          os.Getenv("LOG_JSON") == "true",
	}
}
