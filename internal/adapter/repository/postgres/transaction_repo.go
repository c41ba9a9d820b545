package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/infrastructure/postgres/generated"
	"github.com/iho/cnabrecon/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepository(pool)
}

func newTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// CreateBatch bulk-inserts transactions with COPY inside tx.
func (r *TransactionRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, transactions []*domain.Transaction) (int64, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	queries := txQueries(tx)

	params := make([]generated.CreateTransactionsParams, 0, len(transactions))
	for _, t := range transactions {
		if t.Status == "" {
			t.Status = domain.StatusPending
		}
		params = append(params, transactionToParams(t))
	}

	return queries.CreateTransactions(ctx, params)
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// ListByOrigin returns every transaction of one feed in insertion order.
func (r *TransactionRepository) ListByOrigin(ctx context.Context, origin domain.Origin) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByOrigin(ctx, string(origin))
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// FindMatches returns the records of origin sharing nosso numero, paid
// amount and occurrence day.
func (r *TransactionRepository) FindMatches(ctx context.Context, origin domain.Origin, nossoNumero string, paidAmount decimal.Decimal, occurrenceDate time.Time) ([]*domain.Transaction, error) {
	rows, err := r.queries.FindMatchingTransactions(ctx, generated.FindMatchingTransactionsParams{
		Origin:         string(origin),
		NossoNumero:    nossoNumero,
		PaidAmount:     decimalToNumeric(paidAmount),
		OccurrenceDate: timeToPgDate(&occurrenceDate),
	})
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// ListByWindow returns the transactions whose keyed date falls in dr.
func (r *TransactionRepository) ListByWindow(ctx context.Context, field domain.DateField, dr domain.DateRange) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByWindow(ctx, generated.ListTransactionsByWindowParams{
		UseCreditDate: field == domain.DateFieldCredit,
		StartDate:     timeToPgDate(&dr.Start),
		EndDate:       timeToPgDate(&dr.End),
	})
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// ListPage returns one page of a window listing plus the total match count.
func (r *TransactionRepository) ListPage(ctx context.Context, q domain.PeriodQuery) (*domain.Page, error) {
	useCredit := q.DateField == domain.DateFieldCredit

	total, err := r.queries.CountTransactionsPage(ctx, generated.CountTransactionsPageParams{
		UseCreditDate: useCredit,
		StartDate:     timeToPgDate(&q.Range.Start),
		EndDate:       timeToPgDate(&q.Range.End),
		Filter:        string(q.Filter),
	})
	if err != nil {
		return nil, err
	}

	rows, err := r.queries.ListTransactionsPage(ctx, generated.ListTransactionsPageParams{
		UseCreditDate: useCredit,
		StartDate:     timeToPgDate(&q.Range.Start),
		EndDate:       timeToPgDate(&q.Range.End),
		Filter:        string(q.Filter),
		PageLimit:     int32(q.Limit),
		PageOffset:    int32(q.Offset),
	})
	if err != nil {
		return nil, err
	}

	return &domain.Page{Items: rowsToTransactions(rows), Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

// Search matches payer names by case-insensitive substring and paid
// amounts exactly.
func (r *TransactionRepository) Search(ctx context.Context, q domain.SearchQuery) (*domain.Page, error) {
	payer := escapeLike(q.PayerName)

	var amount decimal.NullDecimal
	if q.PaidAmount != nil {
		amount = decimal.NewNullDecimal(*q.PaidAmount)
	}

	total, err := r.queries.CountSearchTransactions(ctx, generated.CountSearchTransactionsParams{
		PayerName:  payer,
		PaidAmount: nullDecimalToNumeric(amount),
	})
	if err != nil {
		return nil, err
	}

	rows, err := r.queries.SearchTransactions(ctx, generated.SearchTransactionsParams{
		PayerName:  payer,
		PaidAmount: nullDecimalToNumeric(amount),
		PageLimit:  int32(q.Limit),
		PageOffset: int32(q.Offset),
	})
	if err != nil {
		return nil, err
	}

	return &domain.Page{Items: rowsToTransactions(rows), Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

// WindowTotals aggregates paid amounts, status counts and the GERAL
// financial distribution of a window.
func (r *TransactionRepository) WindowTotals(ctx context.Context, field domain.DateField, dr domain.DateRange) (*domain.WindowTotals, error) {
	row, err := r.queries.GetWindowTotals(ctx, generated.GetWindowTotalsParams{
		UseCreditDate: field == domain.DateFieldCredit,
		StartDate:     timeToPgDate(&dr.Start),
		EndDate:       timeToPgDate(&dr.End),
	})
	if err != nil {
		return nil, err
	}

	paidGeral := numericToDecimal(row.PaidGeral)

	return &domain.WindowTotals{
		PaidAPI:          numericToDecimal(row.PaidApi),
		PaidGeral:        paidGeral,
		CountDivergent:   row.CountDivergent,
		CountConciliated: row.CountConciliated,
		Geral: domain.FinancialTotals{
			Rebate:          numericToDecimal(row.Rebate),
			Discount:        numericToDecimal(row.Discount),
			IOF:             numericToDecimal(row.Iof),
			InterestPenalty: numericToDecimal(row.InterestPenalty),
			OtherExpenses:   numericToDecimal(row.OtherExpenses),
			OtherCredits:    numericToDecimal(row.OtherCredits),
			NetAmount:       numericToDecimal(row.NetAmount),
			PaidAmount:      paidGeral,
			TariffAmount:    numericToDecimal(row.TariffAmount),
			TitleAmount:     numericToDecimal(row.TitleAmount),
		},
	}, nil
}

// UpdateStatuses sets status on every listed ID inside tx.
func (r *TransactionRepository) UpdateStatuses(ctx context.Context, tx usecase.Transaction, status domain.ReconciliationStatus, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	return txQueries(tx).UpdateTransactionStatuses(ctx, generated.UpdateTransactionStatusesParams{
		Status: string(status),
		Ids:    ids,
	})
}

// LockReconciliation takes the transaction-scoped advisory lock that
// serializes stamping passes across processes.
func (r *TransactionRepository) LockReconciliation(ctx context.Context, tx usecase.Transaction) error {
	return txQueries(tx).LockReconciliation(ctx)
}

// ExistsByFileSource reports whether a file name was already imported.
func (r *TransactionRepository) ExistsByFileSource(ctx context.Context, fileSource string) (bool, error) {
	return r.queries.FileSourceExists(ctx, fileSource)
}

// ListFileSources returns the distinct imported file names, sorted.
func (r *TransactionRepository) ListFileSources(ctx context.Context) ([]string, error) {
	files, err := r.queries.ListFileSources(ctx)
	if err != nil {
		return nil, err
	}

	if files == nil {
		files = []string{}
	}

	return files, nil
}

// DeleteByFileSources deletes every transaction imported from fileSources.
func (r *TransactionRepository) DeleteByFileSources(ctx context.Context, fileSources []string) (int64, error) {
	if len(fileSources) == 0 {
		return 0, nil
	}

	return r.queries.DeleteTransactionsByFileSources(ctx, fileSources)
}

// DeleteAll deletes every transaction.
func (r *TransactionRepository) DeleteAll(ctx context.Context) (int64, error) {
	return r.queries.DeleteAllTransactions(ctx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
