// README: Smoke and load runner against a deployed travel API; prints PASS/FAIL/PENDING/SKIP per case.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, pending, skipped := 0, 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusPending:
			pending++
		case statusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", pass, fail, pending, skipped)

	if fail > 0 || (cfg.Strict && pending > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	MigrationPath  string
	ApplyMigration bool
	// Live enables cases that reach Gemini and so cost quota.
	Live        bool
	Strict      bool
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

func loadConfig() Config {
	_ = godotenv.Load()

	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("TRAVEL_API_BASE_URL", "http://localhost:8000"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("TRAVEL_DB_DSN"), "Postgres DSN (history checks skipped when empty)")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("TRAVEL_REDIS_ADDR"), "Redis address (cache checks skipped when empty)")
	flag.StringVar(&cfg.MigrationPath, "migration", envOrDefault("TRAVEL_BENCH_MIGRATION", "migrations/0001_suggestion_history.sql"), "Migration SQL path")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", envOrDefaultBool("TRAVEL_BENCH_APPLY_MIGRATION", false), "Apply migration SQL before tests")
	flag.BoolVar(&cfg.Live, "live", envOrDefaultBool("TRAVEL_BENCH_LIVE", false), "Run cases that call the model")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("TRAVEL_BENCH_STRICT", false), "Fail on pending cases")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("TRAVEL_BENCH_TIMEOUT", 2*time.Minute), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("TRAVEL_BENCH_CONCURRENCY", 20), "Concurrency for load cases")
	flag.DurationVar(&cfg.Duration, "duration", envOrDefaultDuration("TRAVEL_BENCH_DURATION", 10*time.Second), "Duration for load cases")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
