package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	JWTSecret        string
	TokenTTL         time.Duration
	RedisAddr        string
	AIAPIKey         string
	AIBaseURL        string
	EmbeddingModel   string
	ChatModel        string
	AITimeout        time.Duration
	StatsWorkerCount int
	StatsQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:recallbox.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		JWTSecret:        envOr("JWT_SECRET", ""),
		TokenTTL:         envDurationOr("TOKEN_TTL", 24*time.Hour),
		RedisAddr:        envOr("REDIS_ADDR", ""),
		AIAPIKey:         envOr("AI_API_KEY", ""),
		AIBaseURL:        envOr("AI_BASE_URL", ""),
		EmbeddingModel:   envOr("AI_EMBEDDING_MODEL", "text-embedding-3-small"),
		ChatModel:        envOr("AI_CHAT_MODEL", "gpt-4o-mini"),
		AITimeout:        envDurationOr("AI_TIMEOUT", 15*time.Second),
		StatsWorkerCount: envIntOr("STATS_WORKER_COUNT", 2),
		StatsQueueSize:   envIntOr("STATS_QUEUE_SIZE", 64),
	}
}

// Validate checks that the configuration is usable before the server starts.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.StatsWorkerCount < 1 {
		return fmt.Errorf("STATS_WORKER_COUNT must be at least 1, got %d", c.StatsWorkerCount)
	}
	if c.StatsQueueSize < 1 {
		return fmt.Errorf("STATS_QUEUE_SIZE must be at least 1, got %d", c.StatsQueueSize)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
