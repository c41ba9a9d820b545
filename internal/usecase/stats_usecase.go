package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/cnabrecon/internal/domain"
)

const statsGenerationKey = "stats:generation"

// StatsUseCase computes dashboard figures, cached per data generation.
type StatsUseCase struct {
	repo    TransactionRepository
	cache   Cache
	ttl     time.Duration
	metrics Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// NewStatsUseCase creates a new StatsUseCase. A nil cache disables caching.
func NewStatsUseCase(repo TransactionRepository, cache Cache, ttl time.Duration, metrics Metrics, logger zerolog.Logger) *StatsUseCase {
	if metrics == nil {
		metrics = NopMetrics()
	}
	if ttl <= 0 {
		ttl = DefaultStatsCacheTTL
	}

	return &StatsUseCase{
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger.With().Str("component", "stats").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// StatsInput selects the dashboard window.
type StatsInput struct {
	Start         *time.Time
	End           *time.Time
	UseCreditDate *bool
}

// GetStats returns totals for the window, keyed by occurrence or credit date.
func (uc *StatsUseCase) GetStats(ctx context.Context, input StatsInput) (*domain.DashboardStats, error) {
	r := domain.NormalizeRange(input.Start, input.End, uc.now())
	field := ResolveDateField(input.UseCreditDate, input.Start != nil)

	key := uc.cacheKey(ctx, field, r)
	if key != "" {
		if stats, ok := uc.fromCache(ctx, key); ok {
			return stats, nil
		}
	}

	totals, err := uc.repo.WindowTotals(ctx, field, r)
	if err != nil {
		return nil, storeFailure(uc.metrics, uc.logger, "window_totals", err)
	}

	stats := domain.NewDashboardStats(r, field, *totals)

	if key != "" {
		if data, err := json.Marshal(stats); err == nil {
			if err := uc.cache.Set(ctx, key, data, uc.ttl); err != nil {
				uc.logger.Warn().Err(err).Msg("failed to cache stats")
			}
		}
	}

	return stats, nil
}

// Invalidate bumps the cache generation so earlier entries are never read.
func (uc *StatsUseCase) Invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}

	if _, err := uc.cache.Incr(ctx, statsGenerationKey); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to invalidate stats cache")
	}
}

func (uc *StatsUseCase) cacheKey(ctx context.Context, field domain.DateField, r domain.DateRange) string {
	if uc.cache == nil {
		return ""
	}

	gen := "0"
	raw, err := uc.cache.Get(ctx, statsGenerationKey)
	switch {
	case err == nil:
		gen = string(raw)
	case !errors.Is(err, domain.ErrCacheMiss):
		uc.logger.Warn().Err(err).Msg("stats cache unavailable")
		return ""
	}

	return fmt.Sprintf("stats:%s:%s:%s:%s", gen, field,
		r.Start.Format(domain.QueryDateLayout), r.End.Format(domain.QueryDateLayout))
}

func (uc *StatsUseCase) fromCache(ctx context.Context, key string) (*domain.DashboardStats, bool) {
	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			uc.logger.Warn().Err(err).Msg("stats cache read failed")
		}
		uc.metrics.RecordCache(false)
		return nil, false
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		uc.metrics.RecordCache(false)
		return nil, false
	}

	uc.metrics.RecordCache(true)
	return &stats, true
}
