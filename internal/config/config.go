// README: Config loader with env defaults for HTTP, Gemini, Maps, cache, history and rate limits.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type HistoryConfig struct {
	Retention time.Duration
	PruneSpec string
}

type Config struct {
	HTTP struct {
		Addr           string
		MaxUploadBytes int64
		// TrustedProxies may set the client IP via X-Forwarded-For. Empty trusts none.
		TrustedProxies []string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Cache struct {
		SuggestionTTL time.Duration
		WeatherTTL    time.Duration
	}
	AI struct {
		GeminiKey string
		Model     string
	}
	Maps struct {
		APIKey string
	}
	Client struct {
		BaseURL string
		Timeout time.Duration
	}
	RateLimit RateLimitConfig
	History   HistoryConfig
}

// Load reads .env (when present) and the process environment.
// Required values are checked by Validate, not here, so the CLI can share it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRAVEL_HTTP_ADDR", ":8000")
	cfg.HTTP.MaxUploadBytes = int64(envOrDefaultInt("TRAVEL_MAX_UPLOAD_MB", 10)) << 20
	cfg.HTTP.TrustedProxies = splitList(os.Getenv("TRAVEL_TRUSTED_PROXIES"))
	cfg.DB.DSN = os.Getenv("TRAVEL_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TRAVEL_REDIS_ADDR")
	cfg.Cache.SuggestionTTL = envOrDefaultDuration("TRAVEL_SUGGEST_TTL", time.Hour)
	cfg.Cache.WeatherTTL = envOrDefaultDuration("TRAVEL_WEATHER_TTL", 10*time.Minute)
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.Model = envOrDefault("GEMINI_MODEL", "gemini-2.5-flash")
	cfg.Maps.APIKey = os.Getenv("TRAVEL_MAPS_API_KEY")
	cfg.Client.BaseURL = envOrDefault("TRAVEL_API_BASE_URL", "http://localhost:8000")
	cfg.Client.Timeout = envOrDefaultDuration("TRAVEL_CLIENT_TIMEOUT", 0)
	cfg.RateLimit.RPS = envOrDefaultFloat("TRAVEL_RATE_RPS", 2)
	cfg.RateLimit.Burst = envOrDefaultInt("TRAVEL_RATE_BURST", 5)
	cfg.History.Retention = time.Duration(envOrDefaultInt("TRAVEL_HISTORY_RETENTION_DAYS", 30)) * 24 * time.Hour
	cfg.History.PruneSpec = envOrDefault("TRAVEL_HISTORY_PRUNE_SPEC", "@daily")
	return cfg, nil
}

// Validate checks the settings the API server cannot run without.
func (c Config) Validate() error {
	if c.AI.GeminiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("TRAVEL_HTTP_ADDR is required")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return fmt.Errorf("TRAVEL_MAX_UPLOAD_MB must be positive")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Warning: invalid integer for %s, using default: %d", key, def)
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
		log.Printf("Warning: invalid number for %s, using default: %v", key, def)
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s, using default: %s", key, def)
	}
	return def
}
