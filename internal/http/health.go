package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"doctorat/internal/platform/metrics"
	"doctorat/pkg/platform/httputil"
)

const checkTimeout = 2 * time.Second

// Check pings one dependency. A failing critical check makes the service
// unhealthy; any other failure only degrades it.
type Check struct {
	Name     string
	Critical bool
	Run      func(ctx context.Context) error
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type healthHandler struct {
	checks  []Check
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	type result struct {
		check Check
		err   error
	}
	results := make([]result, len(h.checks))
	var wg sync.WaitGroup
	for i, c := range h.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = result{check: c, err: c.Run(ctx)}
		}()
	}
	wg.Wait()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(results))}
	status := http.StatusOK
	for _, res := range results {
		if h.metrics != nil {
			h.metrics.SetDependencyUp(res.check.Name, res.err == nil)
		}
		if res.err == nil {
			resp.Checks[res.check.Name] = "ok"
			continue
		}
		resp.Checks[res.check.Name] = res.err.Error()
		h.logger.WarnContext(ctx, "health check failed", "dependency", res.check.Name, "error", res.err)
		if res.check.Critical {
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		} else if resp.Status == "ok" {
			resp.Status = "degraded"
		}
	}
	httputil.WriteJSON(w, status, resp)
}
