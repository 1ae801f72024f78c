// Package httpapi assembles the service router: shared middleware, module
// handlers, health, and metrics.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yojana/internal/platform/metrics"
	"yojana/internal/platform/middleware"
	"yojana/pkg/platform/httputil"
)

// Registrar is implemented by module handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports the health of one backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Options carries router-wide dependencies.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Checks maps dependency name to its health check. Nil values are skipped.
	Checks map[string]HealthChecker
}

// NewRouter wires all module handlers behind the shared middleware chain.
func NewRouter(opts Options, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(opts.Metrics))

	r.Get("/health", handleHealth(opts.Checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)
		for _, handler := range handlers {
			handler.Register(api)
		}
	})

	return r
}

func handleHealth(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Health(ctx); err != nil {
				deps[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(deps) > 0 {
			body["dependencies"] = deps
		}
		httputil.WriteJSON(w, status, body)
	}
}
