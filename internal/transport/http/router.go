// Package httptransport assembles the public HTTP surface: the shared
// middleware stack and every module's routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"govos/internal/platform/metrics"
	"govos/internal/platform/middleware"
	"govos/pkg/platform/middleware/requesttime"
)

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig holds what the router needs besides the module handlers.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	// ExposeMetrics serves the Prometheus registry on /metrics.
	ExposeMetrics bool
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(cfg RouterConfig, modules ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.ContentTypeJSON)
	if cfg.MaxBodyBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	for _, m := range modules {
		m.Register(r)
	}
	if cfg.ExposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	return r
}
