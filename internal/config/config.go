package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration shared by the watchlist site and the resource API.
type Config struct {
	ServerPort     int
	DatabasePath   string
	SecretKey      string
	Env            string
	LogLevel       string
	LoginRateLimit int      // Login/signup attempts per minute per IP
	CORSOrigins    []string // Only used by the resource API
	EventRetention time.Duration
	PruneSchedule  string // Cron spec for pruning old events
}

// IsProduction reports whether cookies should be marked Secure.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadWatchlist loads the watchlist site configuration.
func LoadWatchlist() (*Config, error) {
	return load(8080, "DATABASE_PATH")
}

// LoadResourceAPI loads the resource API configuration.
func LoadResourceAPI() (*Config, error) {
	return load(5000, "DATABASE_FILE")
}

func load(defaultPort int, dbKey string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(defaultPort)))
	if err != nil {
		return nil, err
	}
	rate, err := strconv.Atoi(getEnv("LOGIN_RATE_LIMIT", "10"))
	if err != nil {
		return nil, err
	}
	retention, err := time.ParseDuration(getEnv("EVENT_RETENTION", "720h"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv(dbKey, "./data.db"),
		SecretKey:      getEnv("SECRET_KEY", "dev"),
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LoginRateLimit: rate,
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		EventRetention: retention,
		PruneSchedule:  getEnv("EVENT_PRUNE_SCHEDULE", "@hourly"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
