package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"phonebook/internal/platform/metrics"
	"phonebook/internal/platform/middleware"
	"phonebook/pkg/platform/httputil"
	"phonebook/pkg/platform/middleware/metadata"
	"phonebook/pkg/platform/middleware/requesttime"
	"phonebook/pkg/requestcontext"
)

const healthTimeout = 2 * time.Second

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Config collects everything the router needs.
type Config struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	HealthCheck HealthCheck
	Modules     []Registrar
}

// NewRouter wires the middleware chain, operational endpoints and module routes.
func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.LatencyMiddleware(cfg.Metrics))

	r.Get("/health", healthHandler(cfg.HealthCheck, logger))
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	for _, m := range cfg.Modules {
		m.Register(r)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	return r
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthHandler(check HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
