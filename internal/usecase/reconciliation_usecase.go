package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
)

// ReconciliationConfig holds the policies for open reconciliation choices.
type ReconciliationConfig struct {
	OrphanGeral OrphanGeralPolicy
	Duplicates  DuplicatePolicy
}

// ReconciliationUseCase runs stamping passes and windowed comparisons.
type ReconciliationUseCase struct {
	txManager TransactionManager
	repo      TransactionRepository
	retrier   Retrier
	stats     StatsInvalidator
	metrics   Metrics
	logger    zerolog.Logger
	cfg       ReconciliationConfig
	now       func() time.Time

	// mu serializes stamping passes within this process.
	mu sync.Mutex
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	txManager TransactionManager,
	repo TransactionRepository,
	retrier Retrier,
	stats StatsInvalidator,
	metrics Metrics,
	logger zerolog.Logger,
	cfg ReconciliationConfig,
) *ReconciliationUseCase {
	if metrics == nil {
		metrics = NopMetrics()
	}

	return &ReconciliationUseCase{
		txManager: txManager,
		repo:      repo,
		retrier:   retrier,
		stats:     stats,
		metrics:   metrics,
		logger:    logger.With().Str("component", "reconciliation").Logger(),
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// StampReport summarizes one stamping pass.
type StampReport struct {
	StartedAt        time.Time
	Duration         time.Duration
	OrphanGeral      OrphanGeralPolicy
	APIRecords       int
	APIConciliated   int
	APIDivergent     int
	GeralConciliated int
	GeralDivergent   int
	Updated          int
}

// PerformReconciliation stamps CONCILIADO or DIVERGENTE on stored records.
// Status writes happen in one database transaction that first takes the
// reconciliation lock, so concurrent passes never interleave.
func (uc *ReconciliationUseCase) PerformReconciliation(ctx context.Context) (*StampReport, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	report := &StampReport{StartedAt: uc.now(), OrphanGeral: uc.cfg.OrphanGeral}

	err := uc.retrier.Retry(ctx, func() error {
		outcome, apiCount, err := uc.stampOnce(ctx)
		if err != nil {
			return err
		}

		report.APIRecords = apiCount
		report.APIConciliated = outcome.APIConciliated
		report.APIDivergent = outcome.APIDivergent
		report.GeralConciliated = outcome.GeralConciliated
		report.GeralDivergent = outcome.GeralDivergent
		report.Updated = outcome.Changed()

		return nil
	})
	if err != nil {
		return nil, uc.storeError("stamp", err)
	}

	report.Duration = time.Since(report.StartedAt)
	uc.metrics.RecordStamping(report.Duration, map[domain.ReconciliationStatus]int{
		domain.StatusConciliated: report.APIConciliated + report.GeralConciliated,
		domain.StatusDivergent:   report.APIDivergent + report.GeralDivergent,
	})

	if report.Updated > 0 && uc.stats != nil {
		uc.stats.Invalidate(ctx)
	}

	uc.logger.Info().
		Int("api_records", report.APIRecords).
		Int("api_conciliated", report.APIConciliated).
		Int("api_divergent", report.APIDivergent).
		Int("geral_conciliated", report.GeralConciliated).
		Int("geral_divergent", report.GeralDivergent).
		Int("updated", report.Updated).
		Dur("duration", report.Duration).
		Msg("reconciliation pass finished")

	return report, nil
}

func (uc *ReconciliationUseCase) stampOnce(ctx context.Context) (*StampOutcome, int, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	if err := uc.repo.LockReconciliation(ctx, tx); err != nil {
		return nil, 0, err
	}

	apiRecords, err := uc.repo.ListByOrigin(ctx, domain.OriginAPI)
	if err != nil {
		return nil, 0, err
	}

	opts := StampOptions{OrphanGeral: uc.cfg.OrphanGeral}
	if opts.OrphanGeral == OrphanGeralDivergent {
		opts.GeralRecords, err = uc.repo.ListByOrigin(ctx, domain.OriginGeral)
		if err != nil {
			return nil, 0, err
		}
	}

	lookup := func(ctx context.Context, nossoNumero string, paid decimal.Decimal, occurred time.Time) ([]*domain.Transaction, error) {
		return uc.repo.FindMatches(ctx, domain.OriginGeral, nossoNumero, paid, occurred)
	}

	outcome, err := StampStatuses(ctx, apiRecords, lookup, opts)
	if err != nil {
		return nil, 0, err
	}

	for _, status := range []domain.ReconciliationStatus{domain.StatusConciliated, domain.StatusDivergent} {
		ids := outcome.Updates[status]
		if len(ids) == 0 {
			continue
		}

		if _, err := uc.repo.UpdateStatuses(ctx, tx, status, ids); err != nil {
			return nil, 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}

	return outcome, len(apiRecords), nil
}

// CompareInput selects the window of a comparison.
type CompareInput struct {
	Start         *time.Time
	End           *time.Time
	UseCreditDate *bool
	OnlyDivergent bool
}

// ComparisonSummary counts results per class.
type ComparisonSummary struct {
	Total       int
	Conciliated int
	Divergent   int
	OnlyAPI     int
	OnlyGeral   int
}

// ComparisonReport is the outcome of a windowed comparison.
type ComparisonReport struct {
	Results     []*domain.ComparisonResult
	Summary     ComparisonSummary
	Range       domain.DateRange
	DateField   domain.DateField
	GeneratedAt time.Time
}

// CompareTransactions pairs API and GERAL records inside a date window.
// A store failure is returned as domain.ErrStoreUnavailable, never as an
// empty report.
func (uc *ReconciliationUseCase) CompareTransactions(ctx context.Context, input CompareInput) (*ComparisonReport, error) {
	r := domain.NormalizeRange(input.Start, input.End, uc.now())
	field := ResolveDateField(input.UseCreditDate, input.Start != nil)

	records, err := uc.repo.ListByWindow(ctx, field, r)
	if err != nil {
		return nil, uc.storeError("list_window", err)
	}

	results, err := ReconcileWindow(records, WindowOptions{
		DateField:     field,
		Range:         &r,
		OnlyDivergent: input.OnlyDivergent,
		Duplicates:    uc.cfg.Duplicates,
		Logger:        &uc.logger,
	})
	if err != nil {
		return nil, err
	}

	report := &ComparisonReport{
		Results:     results,
		Summary:     summarize(results),
		Range:       r,
		DateField:   field,
		GeneratedAt: uc.now(),
	}

	uc.metrics.RecordComparison(map[domain.ComparisonStatus]int{
		domain.ComparisonConciliated: report.Summary.Conciliated,
		domain.ComparisonDivergent:   report.Summary.Divergent,
		domain.ComparisonOnlyAPI:     report.Summary.OnlyAPI,
		domain.ComparisonOnlyGeral:   report.Summary.OnlyGeral,
	})

	return report, nil
}

func summarize(results []*domain.ComparisonResult) ComparisonSummary {
	s := ComparisonSummary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case domain.ComparisonConciliated:
			s.Conciliated++
		case domain.ComparisonDivergent:
			s.Divergent++
		case domain.ComparisonOnlyAPI:
			s.OnlyAPI++
		case domain.ComparisonOnlyGeral:
			s.OnlyGeral++
		}
	}

	return s
}

// ResolveDateField applies the window default: without an explicit flag
// the credit date is used only when no start date was given.
func ResolveDateField(useCreditDate *bool, startGiven bool) domain.DateField {
	if useCreditDate != nil {
		return domain.DateFieldFor(*useCreditDate)
	}

	return domain.DateFieldFor(!startGiven)
}

func (uc *ReconciliationUseCase) storeError(op string, err error) error {
	return storeFailure(uc.metrics, uc.logger, op, err)
}
