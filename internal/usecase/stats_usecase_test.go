package usecase_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
	"github.com/iho/cnabrecon/internal/usecase/mocks"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(string(c.data[key]), 10, 64)
	n++
	c.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

type cacheCounter struct {
	usecase.Metrics
	hits, misses int
}

func (m *cacheCounter) RecordCache(hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func statsRepo() *mocks.MemoryTransactionRepository {
	d := day(2024, 3, 1)
	api := record("a1", domain.OriginAPI, "001", "100.00", d)
	api.Status = domain.StatusConciliated
	geral := record("g1", domain.OriginGeral, "001", "90.00", d)
	geral.Status = domain.StatusDivergent
	geral.Discount = decimal.RequireFromString("5.00")
	geral.TariffAmount = decimal.RequireFromString("1.50")
	return mocks.NewMemoryTransactionRepository(api, geral)
}

func TestStatsUseCase_GetStats(t *testing.T) {
	uc := usecase.NewStatsUseCase(statsRepo(), nil, 0, nil, zerolog.Nop())

	noCredit := false
	stats, err := uc.GetStats(context.Background(), usecase.StatsInput{
		Start:         day(2024, 3, 1),
		End:           day(2024, 3, 1),
		UseCreditDate: &noCredit,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DateFieldOccurrence, stats.DateField)
	assert.True(t, stats.TotalAPI.Equal(decimal.RequireFromString("100")))
	assert.True(t, stats.TotalGeral.Equal(decimal.RequireFromString("90")))
	assert.True(t, stats.Difference.Equal(decimal.RequireFromString("10")))
	assert.EqualValues(t, 1, stats.CountDivergent)
	assert.EqualValues(t, 1, stats.CountConciliated)
	require.Len(t, stats.Distribution, 10)
	assert.Equal(t, "Discount", stats.Distribution[1].Label)
	assert.True(t, stats.Distribution[1].Amount.Equal(decimal.RequireFromString("5")))
	assert.True(t, stats.Distribution[8].Amount.Equal(decimal.RequireFromString("1.5")))
}

func TestStatsUseCase_CachesUntilInvalidated(t *testing.T) {
	repo := statsRepo()
	cache := newMapCache()
	metrics := &cacheCounter{Metrics: usecase.NopMetrics()}
	uc := usecase.NewStatsUseCase(repo, cache, time.Minute, metrics, zerolog.Nop())

	input := usecase.StatsInput{Start: day(2024, 3, 1), End: day(2024, 3, 1)}

	first, err := uc.GetStats(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.misses)

	repo.Err = errors.New("must not be queried")
	cached, err := uc.GetStats(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.hits)
	assert.True(t, first.TotalAPI.Equal(cached.TotalAPI))
	assert.Equal(t, first.CountDivergent, cached.CountDivergent)

	uc.Invalidate(context.Background())
	_, err = uc.GetStats(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestStatsUseCase_CacheFailureFallsBackToStore(t *testing.T) {
	ctrl := gomock.NewController(t)

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "stats:generation").Return(nil, errors.New("redis down"))

	uc := usecase.NewStatsUseCase(statsRepo(), cache, time.Minute, nil, zerolog.Nop())

	stats, err := uc.GetStats(context.Background(), usecase.StatsInput{Start: day(2024, 3, 1), End: day(2024, 3, 1)})
	require.NoError(t, err)
	assert.True(t, stats.TotalAPI.Equal(decimal.RequireFromString("100")))
}

func TestStatsUseCase_InvalidateWithoutCache(t *testing.T) {
	uc := usecase.NewStatsUseCase(statsRepo(), nil, 0, nil, zerolog.Nop())
	uc.Invalidate(context.Background())
}
