// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/wetalkinmedia/PocketWatcha2/internal/logger"
)

// Config holds application configuration
type Config struct {
	// Server
	Env                string
	Port               string
	CORSAllowedOrigins []string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// AdminAPIKey guards the admin endpoints. Empty disables them.
	AdminAPIKey string

	// Insight cache
	CacheDriver   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	CachePurge    string
}

var (
	appConfig *Config
	mu        sync.Mutex
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debugw(".env file not loaded", "error", err)
	}

	cfg := &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "pocketwatcha"),
		DBPassword: getEnv("DB_PASSWORD", "pocketwatcha"),
		DBName:     getEnv("DB_NAME", "pocketwatcha"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "pocketwatcha.db"),

		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTExpirationDur: getDuration("JWT_EXPIRES_IN", 15*time.Minute),

		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),

		CacheDriver:   strings.ToLower(getEnv("CACHE_DRIVER", "memory")),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),
		CachePurge:    getEnv("CACHE_PURGE_SCHEDULE", "@every 10m"),
	}

	mu.Lock()
	appConfig = cfg
	mu.Unlock()
	return cfg, nil
}

// Get returns the application configuration, loading it on first use.
func Get() *Config {
	mu.Lock()
	cfg := appConfig
	mu.Unlock()
	if cfg != nil {
		return cfg
	}
	cfg, err := Load()
	if err != nil {
		logger.Get().Fatalw("failed to load configuration", "error", err)
	}
	return cfg
}

// Set replaces the active configuration. Tests use it to pin settings.
func Set(cfg *Config) {
	mu.Lock()
	appConfig = cfg
	mu.Unlock()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Get().Warnw("invalid duration, using default", "key", key, "value", raw, "default", defaultValue.String())
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		logger.Get().Warnw("invalid integer, using default", "key", key, "value", raw)
		return defaultValue
	}
	return n
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
