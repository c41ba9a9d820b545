package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/cnabrecon/internal/adapter/cnab"
	httpAdapter "github.com/iho/cnabrecon/internal/adapter/http"
	"github.com/iho/cnabrecon/internal/adapter/http/handler"
	"github.com/iho/cnabrecon/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/cnabrecon/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/cnabrecon/internal/adapter/repository/redis"
	"github.com/iho/cnabrecon/internal/infrastructure/auth"
	"github.com/iho/cnabrecon/internal/infrastructure/config"
	"github.com/iho/cnabrecon/internal/infrastructure/logger"
	"github.com/iho/cnabrecon/internal/infrastructure/metrics"
	"github.com/iho/cnabrecon/internal/infrastructure/postgres"
	"github.com/iho/cnabrecon/internal/infrastructure/redis"
	"github.com/iho/cnabrecon/internal/usecase"
)

const (
	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	reconCfg, err := reconciliationConfig(cfg)
	if err != nil {
		return err
	}

	// Run migrations
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
		ConnTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	logger.Info().Msg("connected to redis")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool).WithLockTimeout(cfg.StoreLockTimeout)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	retrier := newRetrier(cfg, m, logger)
	idGen := postgresRepo.NewULIDGenerator()
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	statsCache := redisRepo.NewCache(redisClient)

	// Initialize use cases
	statsUC := usecase.NewStatsUseCase(transactionRepo, statsCache, cfg.StatsCacheTTL, m, logger)
	reconciliationUC := usecase.NewReconciliationUseCase(txManager, transactionRepo, retrier, statsUC, m, logger, reconCfg)
	importUC := usecase.NewImportUseCase(txManager, transactionRepo, cnab.NewDecoder(logger), idGen, retrier, reconciliationUC, statsUC, m, logger)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo, statsUC, m, logger)
	auditUC := usecase.NewAuditUseCase(auditRepo, idGen, m, logger)

	// Rate limiting
	rateLimiter := newRateLimiter(cfg, m)
	rateLimiter.StartCleanup(ctx, limiterCleanupInterval, limiterMaxIdle)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ImportHandler:         handler.NewImportHandler(importUC, auditUC, cfg.MaxUploadSize),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC, auditUC),
		StatsHandler:          handler.NewStatsHandler(statsUC),
		TransactionHandler:    handler.NewTransactionHandler(transactionUC, auditUC),
		FileHandler:           handler.NewFileHandler(transactionUC, auditUC),
		AuditHandler:          handler.NewAuditHandler(auditUC),
		HealthHandler:         handler.NewHealthHandler(postgres.NewChecker(pool), redis.NewChecker(redisClient)),
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		RateLimiter:           rateLimiter,
		Metrics:               m,
		MetricsHandler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		JWTManager:            newJWTManager(cfg),
		Logger:                logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Bool("auth", cfg.AuthEnabled).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// reconciliationConfig parses the stamping and comparison policies.
func reconciliationConfig(cfg *config.Config) (usecase.ReconciliationConfig, error) {
	orphan, err := usecase.ParseOrphanGeralPolicy(cfg.OrphanGeralPolicy)
	if err != nil {
		return usecase.ReconciliationConfig{}, fmt.Errorf("ORPHAN_GERAL_POLICY: %w", err)
	}

	duplicates, err := usecase.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return usecase.ReconciliationConfig{}, fmt.Errorf("DUPLICATE_POLICY: %w", err)
	}

	return usecase.ReconciliationConfig{OrphanGeral: orphan, Duplicates: duplicates}, nil
}

// newRateLimiter builds the per-client limiter, counting rejections in m.
func newRateLimiter(cfg *config.Config, m *metrics.Metrics) *middleware.RateLimiter {
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	if m != nil {
		rl = rl.WithRejectCounter(m.RateLimitHits)
	}
	return rl
}

// newRetrier builds the store retrier from the configured retry budget.
func newRetrier(cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) *postgresRepo.Retrier {
	policy := postgresRepo.DefaultRetryPolicy()
	policy.MaxRetries = cfg.StoreMaxRetries
	policy.MaxElapsedTime = cfg.StoreRetryWindow

	r := postgresRepo.NewRetrierWithPolicy(policy, logger)
	if m != nil {
		r = r.WithRetryCounter(m.StoreRetries)
	}
	return r
}

// newJWTManager returns nil when authentication is disabled.
func newJWTManager(cfg *config.Config) *auth.JWTManager {
	if !cfg.AuthEnabled {
		return nil
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
}
