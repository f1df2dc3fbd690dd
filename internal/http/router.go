// Package httpapi assembles the public HTTP surface from the workflow handlers.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"doctorat/internal/platform/metrics"
	"doctorat/pkg/platform/httputil"
	"doctorat/pkg/platform/middleware/actor"
	"doctorat/pkg/platform/middleware/admin"
	"doctorat/pkg/platform/middleware/request"
	"doctorat/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// Registrar mounts one workflow's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Job is an operational task that can be triggered by hand.
type Job func(ctx context.Context) (int, error)

// Config lists what the router exposes. Nil jobs are not routed.
type Config struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Workflows   []Registrar
	Checks      []Check
	AdminToken  string
	ExpirySweep Job
	OutboxRelay Job
}

// NewRouter builds the chi router. Workflow routes require actor headers;
// /health and /metrics do not; /ops routes require the admin token.
func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(request.Timeout(requestTimeout))
	r.Use(requesttime.Middleware)
	if cfg.Metrics != nil {
		r.Use(countRequests(cfg.Metrics))
	}

	r.Method(http.MethodGet, "/health", &healthHandler{checks: cfg.Checks, metrics: cfg.Metrics, logger: logger})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(actor.RequireActor(logger))
		for _, w := range cfg.Workflows {
			w.Register(r)
		}
	})

	r.Route("/ops", func(r chi.Router) {
		r.Use(admin.RequireAdminToken(cfg.AdminToken, logger))
		if cfg.ExpirySweep != nil {
			r.Post("/derogations/expire", runJob(cfg.ExpirySweep, "expired", logger))
		}
		if cfg.OutboxRelay != nil {
			r.Post("/outbox/relay", runJob(cfg.OutboxRelay, "delivered", logger))
		}
	})
	return r
}

func runJob(job Job, countKey string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		n, err := job(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "operational job failed",
				"request_id", request.GetRequestID(ctx),
				"path", r.URL.Path,
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]int{countKey: n})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// countRequests labels by route pattern so ids do not explode cardinality.
func countRequests(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			m.ObserveRequest(route, sw.status)
		})
	}
}
