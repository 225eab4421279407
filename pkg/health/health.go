// Package health serves liveness and readiness endpoints.
//
// Readiness runs every registered check in parallel under a shared timeout and reports
// 503 if any of them fails:
//
//	r.Get("/health/ready", health.Readiness(health.Checks{
//		"snapshots": backendPing,
//		"redis":     redis.Healthcheck(client),
//	}, health.WithTimeout(2*time.Second)))
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/b2bnews/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	defaultTimeout = 5 * time.Second
)

// CheckFunc reports a dependency problem as a non-nil error.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to check functions.
type Checks map[string]CheckFunc

// Report is the JSON body of health responses.
type Report struct {
	Checks map[string]Result `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Result is the outcome of one check.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	log     *slog.Logger
	timeout time.Duration
}

// Option configures readiness checks.
type Option func(*config)

// WithTimeout bounds the total time of all checks.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failing checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// Liveness always answers 200.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusOK, Report{Status: StatusHealthy})
	}
}

// Readiness answers 200 when all checks pass and 503 otherwise.
func Readiness(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := &config{timeout: defaultTimeout, log: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		report := Run(r.Context(), checks, cfg.timeout, cfg.log)
		status := http.StatusOK
		if report.Status != StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		write(w, status, report)
	}
}

// Run executes checks in parallel and aggregates their results.
func Run(ctx context.Context, checks Checks, timeout time.Duration, log *slog.Logger) Report {
	if len(checks) == 0 {
		return Report{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Result, len(checks))
		status  = StatusHealthy
	)
	for name, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := Result{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				res = Result{Status: StatusUnhealthy, Error: err.Error()}
				log.WarnContext(ctx, "health check failed", slog.String("check", name), slog.String("error", err.Error()))
			}
			mu.Lock()
			results[name] = res
			if res.Status != StatusHealthy {
				status = StatusUnhealthy
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	return Report{Status: status, Checks: results}
}

func write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
