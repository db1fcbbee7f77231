package loadgen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

type Config struct {
	BaseURL     string
	Profile     string
	Duration    time.Duration
	RPS         int
	Concurrency int
}

type Result struct {
	TotalRequests int64
	Failures      int64
	Status2xx     int64
	Status4xx     int64
	Status5xx     int64
}

type request struct {
	method string
	path   string
	body   string
}

func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 15
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}

	client := &http.Client{Timeout: 5 * time.Second}
	requests := requestsForProfile(cfg.Profile)
	if len(requests) == 0 {
		return Result{}, fmt.Errorf("unknown profile: %s", cfg.Profile)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	var total, failures, s2xx, s4xx, s5xx int64
	jobs := make(chan request, cfg.Concurrency*2)

	g, workerCtx := errgroup.WithContext(context.Background())
	for i := 0; i < cfg.Concurrency; i++ {
		g.Go(func() error {
			for job := range jobs {
				req, err := http.NewRequestWithContext(workerCtx, job.method, cfg.BaseURL+job.path, strings.NewReader(job.body))
				if err != nil {
					atomic.AddInt64(&failures, 1)
					continue
				}
				if job.body != "" {
					req.Header.Set("Content-Type", "application/json")
				}
				resp, err := client.Do(req)
				if err != nil {
					atomic.AddInt64(&failures, 1)
					continue
				}
				_ = resp.Body.Close()
				atomic.AddInt64(&total, 1)
				switch {
				case resp.StatusCode >= 200 && resp.StatusCode < 300:
					atomic.AddInt64(&s2xx, 1)
				case resp.StatusCode >= 400 && resp.StatusCode < 500:
					atomic.AddInt64(&s4xx, 1)
				case resp.StatusCode >= 500:
					atomic.AddInt64(&s5xx, 1)
				}
			}
			return nil
		})
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.RPS))
	defer ticker.Stop()
	i := 0
	for {
		select {
		case <-ctx.Done():
			close(jobs)
			if err := g.Wait(); err != nil {
				return Result{}, err
			}
			return Result{TotalRequests: total, Failures: failures, Status2xx: s2xx, Status4xx: s4xx, Status5xx: s5xx}, nil
		case <-ticker.C:
			jobs <- requests[i%len(requests)]
			i++
		}
	}
}

func requestsForProfile(profile string) []request {
	switch strings.ToLower(profile) {
	case "", "browse":
		return []request{
			{method: http.MethodGet, path: "/api/products"},
			{method: http.MethodGet, path: "/api/products?page=2&limit=5"},
			{method: http.MethodGet, path: "/api/products?search=a&sort=price&order=desc"},
			{method: http.MethodGet, path: "/api/users"},
			{method: http.MethodGet, path: "/health/live"},
		}
	case "write-heavy":
		return []request{
			{method: http.MethodPost, path: "/api/products", body: `{"name":"loadgen widget","price":9.99,"quantity":1,"category":"loadgen"}`},
			{method: http.MethodGet, path: "/api/products?category=loadgen"},
			{method: http.MethodPut, path: "/api/products/1", body: `{"quantity":7}`},
		}
	case "error-heavy":
		return []request{
			{method: http.MethodPut, path: "/api/products/99999999", body: `{"price":1}`},
			{method: http.MethodDelete, path: "/api/products/99999999"},
			{method: http.MethodPost, path: "/api/products", body: `{"quantity":5}`},
			{method: http.MethodPost, path: "/api/users", body: `{"username":"only-a-username"}`},
		}
	default:
		return nil
	}
}
