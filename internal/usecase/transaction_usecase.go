package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
)

// TransactionUseCase handles listings, search and file management.
type TransactionUseCase struct {
	repo    TransactionRepository
	stats   StatsInvalidator
	metrics Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(repo TransactionRepository, stats StatsInvalidator, metrics Metrics, logger zerolog.Logger) *TransactionUseCase {
	if metrics == nil {
		metrics = NopMetrics()
	}

	return &TransactionUseCase{
		repo:    repo,
		stats:   stats,
		metrics: metrics,
		logger:  logger.With().Str("component", "transactions").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// PeriodInput selects a page of a period listing.
type PeriodInput struct {
	Start         *time.Time
	End           *time.Time
	UseCreditDate *bool
	Filter        domain.ListFilter
	Limit         int
	Offset        int
}

// ListPeriod returns one page of transactions inside a date window.
func (uc *TransactionUseCase) ListPeriod(ctx context.Context, input PeriodInput) (*domain.Page, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	q := domain.PeriodQuery{
		Range:     domain.NormalizeRange(input.Start, input.End, uc.now()),
		DateField: ResolveDateField(input.UseCreditDate, input.Start != nil),
		Filter:    input.Filter,
		Limit:     limit,
		Offset:    offset,
	}

	page, err := uc.repo.ListPage(ctx, q)
	if err != nil {
		return nil, storeFailure(uc.metrics, uc.logger, "list_page", err)
	}

	return page, nil
}

// ExportPeriod returns every transaction of the window for export, up to
// MaxExportRows.
func (uc *TransactionUseCase) ExportPeriod(ctx context.Context, input PeriodInput) (*domain.Page, domain.DateRange, error) {
	q := domain.PeriodQuery{
		Range:     domain.NormalizeRange(input.Start, input.End, uc.now()),
		DateField: ResolveDateField(input.UseCreditDate, input.Start != nil),
		Filter:    input.Filter,
		Limit:     MaxExportRows,
	}

	page, err := uc.repo.ListPage(ctx, q)
	if err != nil {
		return nil, q.Range, storeFailure(uc.metrics, uc.logger, "export_page", err)
	}

	return page, q.Range, nil
}

// SearchInput looks transactions up by payer and amount.
type SearchInput struct {
	PayerName  string
	PaidAmount *decimal.Decimal
	Limit      int
	Offset     int
}

// Search matches payer names case-insensitively by substring and paid
// amounts exactly. Empty criteria are not applied.
func (uc *TransactionUseCase) Search(ctx context.Context, input SearchInput) (*domain.Page, error) {
	term, err := domain.ValidateSearchTerm(input.PayerName)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateSearchAmount(input.PaidAmount); err != nil {
		return nil, err
	}

	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	page, err := uc.repo.Search(ctx, domain.SearchQuery{
		PayerName:  term,
		PaidAmount: input.PaidAmount,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, storeFailure(uc.metrics, uc.logger, "search", err)
	}

	return page, nil
}

// GetTransaction returns one transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(uc.metrics, uc.logger, "get", err)
	}

	return t, nil
}

// ListFileSources returns the distinct imported file names, sorted.
func (uc *TransactionUseCase) ListFileSources(ctx context.Context) ([]string, error) {
	files, err := uc.repo.ListFileSources(ctx)
	if err != nil {
		return nil, storeFailure(uc.metrics, uc.logger, "list_files", err)
	}

	return files, nil
}

// DeleteFiles removes every transaction imported from the given files.
func (uc *TransactionUseCase) DeleteFiles(ctx context.Context, files []string) (int64, error) {
	if len(files) == 0 {
		return 0, nil
	}

	for _, f := range files {
		if err := domain.ValidateFileName(f); err != nil {
			return 0, err
		}
	}

	n, err := uc.repo.DeleteByFileSources(ctx, files)
	if err != nil {
		return 0, storeFailure(uc.metrics, uc.logger, "delete_files", err)
	}

	uc.invalidate(ctx, n)
	uc.logger.Info().Strs("files", files).Int64("deleted", n).Msg("file sources deleted")

	return n, nil
}

// ClearAll removes every stored transaction.
func (uc *TransactionUseCase) ClearAll(ctx context.Context) (int64, error) {
	n, err := uc.repo.DeleteAll(ctx)
	if err != nil {
		return 0, storeFailure(uc.metrics, uc.logger, "delete_all", err)
	}

	uc.invalidate(ctx, n)
	uc.logger.Warn().Int64("deleted", n).Msg("all transactions cleared")

	return n, nil
}

func (uc *TransactionUseCase) invalidate(ctx context.Context, changed int64) {
	if changed > 0 && uc.stats != nil {
		uc.stats.Invalidate(ctx)
	}
}
