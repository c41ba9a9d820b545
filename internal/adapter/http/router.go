package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/cnabrecon/internal/adapter/http/handler"
	"github.com/iho/cnabrecon/internal/adapter/http/middleware"
	"github.com/iho/cnabrecon/internal/infrastructure/auth"
	"github.com/iho/cnabrecon/internal/infrastructure/metrics"
	"github.com/iho/cnabrecon/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ImportHandler         *handler.ImportHandler
	ReconciliationHandler *handler.ReconciliationHandler
	StatsHandler          *handler.StatsHandler
	TransactionHandler    *handler.TransactionHandler
	FileHandler           *handler.FileHandler
	AuditHandler          *handler.AuditHandler
	HealthHandler         *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler

	// JWTManager enables bearer auth; nil leaves every route open.
	JWTManager *auth.JWTManager
	Logger     zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	readers := func(h http.Handler) http.Handler { return h }
	writers := readers
	if cfg.JWTManager != nil {
		var failures middleware.AuthFailureRecorder
		if cfg.Metrics != nil {
			failures = cfg.Metrics
		}

		readers = middleware.OptionalAuth(cfg.JWTManager)
		writers = func(h http.Handler) http.Handler {
			return middleware.AuthMiddleware(cfg.JWTManager, failures)(middleware.RequireRole(auth.RoleOperator)(h))
		}
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		r.Group(func(r chi.Router) {
			r.Use(writers)

			r.Post("/imports", cfg.ImportHandler.Upload)
			r.Post("/imports/{origin}", cfg.ImportHandler.ImportRaw)
			r.Post("/reconciliation/stamp", cfg.ReconciliationHandler.Stamp)
			r.Delete("/transactions", cfg.TransactionHandler.Clear)
			r.Delete("/files", cfg.FileHandler.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(readers)

			r.Get("/reconciliation/compare", cfg.ReconciliationHandler.Compare)
			r.Get("/reconciliation/compare/export", cfg.ReconciliationHandler.Export)
			r.Get("/stats", cfg.StatsHandler.Get)

			r.Get("/transactions", cfg.TransactionHandler.List)
			r.Get("/transactions/export", cfg.TransactionHandler.Export)
			r.Get("/transactions/search", cfg.TransactionHandler.Search)
			r.Get("/transactions/{id}", cfg.TransactionHandler.Get)

			r.Get("/files", cfg.FileHandler.List)
			r.Get("/audit", cfg.AuditHandler.List)
		})
	})

	return r
}
