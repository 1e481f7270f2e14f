package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	API    APIConfig
	CORS   CORSConfig
	Toast  ToastConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type APIConfig struct {
	RateLimitPerSec int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ToastConfig struct {
	DefaultSeconds int
	UndoSeconds    int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_SECOND", "20"))
	if err != nil {
		rateLimit = 20
	}

	toastSeconds, err := strconv.Atoi(getEnv("TOAST_SECONDS", "5"))
	if err != nil {
		toastSeconds = 5
	}

	undoSeconds, err := strconv.Atoi(getEnv("TOAST_UNDO_SECONDS", "8"))
	if err != nil {
		undoSeconds = 8
	}

	origins := strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",")

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ENABLED", "false") == "true",
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		API: APIConfig{
			RateLimitPerSec: rateLimit,
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
		Toast: ToastConfig{
			DefaultSeconds: toastSeconds,
			UndoSeconds:    undoSeconds,
		},
	}

	if cfg.Toast.UndoSeconds < cfg.Toast.DefaultSeconds {
		return nil, fmt.Errorf("TOAST_UNDO_SECONDS must not be shorter than TOAST_SECONDS")
	}

	return cfg, nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
