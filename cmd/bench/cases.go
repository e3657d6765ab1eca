// README: Runner cases; environment, migration, HTTP contract, rate limit and load checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"travelagent/internal/client"
)

const (
	statusPass    = "PASS"
	statusFail    = "FAIL"
	statusPending = "PENDING"
	statusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass}
			},
		},

		httpCaseMethod("API: root banner", http.MethodGet, base+"/", nil, []int{200}, nil),
		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),

		// Validation never reaches the model.
		httpCase("Suggest: empty location -> 400", base+"/api/suggest-by-location", map[string]any{
			"location": "   ",
		}, []int{400}, nil),
		httpCase("Weather: empty destination -> 400", base+"/api/weather", map[string]any{
			"destination": "",
		}, []int{400}, nil),
		{
			Name: "Suggest: image without file -> 400",
			Run: func(ctx context.Context, r *Runner) Result {
				return uploadCase(ctx, r, base+"/api/suggest-by-image", nil, []int{400})
			},
		},
		{
			Name: "Suggest: non-image upload -> 400",
			Run: func(ctx context.Context, r *Runner) Result {
				return uploadCase(ctx, r, base+"/api/suggest-by-image", []byte("plain text, not a picture"), []int{400})
			},
		},
		httpCaseMethod("History: list (404 when disabled)", http.MethodGet, base+"/api/history?limit=5", nil, []int{200}, []int{404}),

		// Model-backed cases.
		liveCase("Suggest: location Kyoto via client", func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			dests, err := client.New(base, client.WithHTTPClient(r.httpc)).SuggestByLocation(ctx, "Kyoto", []string{"History"})
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if len(dests) == 0 {
				return Result{Status: statusFail, Latency: time.Since(start), Note: "no destinations"}
			}
			return Result{Status: statusPass, Latency: time.Since(start), Note: fmt.Sprintf("destinations=%d", len(dests))}
		}),
		liveCase("Suggest: repeat is served from cache", func(ctx context.Context, r *Runner) Result {
			if r.redis == nil {
				return Result{Status: statusSkip, Note: "redis not configured"}
			}
			c := client.New(base, client.WithHTTPClient(r.httpc))
			start := time.Now()
			if _, err := c.SuggestByLocation(ctx, "Kyoto", []string{"History"}); err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			latency := time.Since(start)
			if latency > 500*time.Millisecond {
				return Result{Status: statusPending, Latency: latency, Note: "slow repeat; cache may be cold"}
			}
			return Result{Status: statusPass, Latency: latency}
		}),
		liveCase("Weather: Kyoto via client", func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			res, err := client.New(base, client.WithHTTPClient(r.httpc)).Weather(ctx, "Kyoto")
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			note := "no weather_data"
			if res.WeatherData != nil {
				note = fmt.Sprintf("%g%s %s", res.WeatherData.Temperature, res.WeatherData.Unit.Symbol(), res.WeatherData.Condition)
			}
			return Result{Status: statusPass, Latency: time.Since(start), Note: note}
		}),

		{
			Name: "RateLimit: burst gets 429",
			Run: func(ctx context.Context, r *Runner) Result {
				return burst(ctx, r, base+"/api/weather", map[string]any{"destination": ""})
			},
		},
		{
			Name: "Perf: health throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/health", nil)
			},
		},
	}
}

func liveCase(name string, run func(ctx context.Context, r *Runner) Result) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.Live {
				return Result{Status: statusSkip, Note: "live=false"}
			}
			return run(ctx, r)
		},
	}
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = bytes.NewReader(b)
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			return r.do(req, okStatuses, pendingStatuses)
		},
	}
}

func uploadCase(ctx context.Context, r *Runner, url string, data []byte, okStatuses []int) Result {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != nil {
		fw, _ := mw.CreateFormFile("file", "upload.bin")
		_, _ = fw.Write(data)
	}
	_ = mw.WriteField("preferences", "Beach")
	_ = mw.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return r.do(req, okStatuses, nil)
}

func (r *Runner) do(req *http.Request, okStatuses, pendingStatuses []int) Result {
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	latency := time.Since(start)

	note := fmt.Sprintf("status=%d", resp.StatusCode)
	switch {
	case contains(okStatuses, resp.StatusCode):
		return Result{Status: statusPass, Latency: latency, Note: note}
	case contains(pendingStatuses, resp.StatusCode):
		return Result{Status: statusPending, Latency: latency, Note: note}
	default:
		return Result{Status: statusFail, Latency: latency, Note: note}
	}
}

// burst fires Concurrency requests at once and expects the limiter to refuse some.
func burst(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		limited int
	)
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
			req.Header.Set("Content-Type", "application/json")
			resp, err := r.httpc.Do(req)
			if err != nil {
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests {
				mu.Lock()
				limited++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if limited == 0 {
		return Result{Status: statusPending, Note: "no 429 seen; limiter disabled or burst too high"}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("limited=%d/%d", limited, r.cfg.Concurrency)}
}

func perfLoad(ctx context.Context, r *Runner, method, url string, payload any) Result {
	var b []byte
	if payload != nil {
		b, _ = json.Marshal(payload)
	}
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(b))
				resp, err := r.httpc.Do(req)
				mu.Lock()
				if err != nil {
					errCount++
					mu.Unlock()
					continue
				}
				count++
				mu.Unlock()
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
