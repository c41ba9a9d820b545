package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/infrastructure/postgres/generated"
)

var transactionColumns = []string{
	"id", "origin", "status", "nosso_numero", "file_source",
	"bank", "batch", "record_type", "sequence", "segment", "movement", "agency", "account", "wallet",
	"document_number", "collecting_bank", "collecting_agency", "company_title_id",
	"registration_type", "registration_number", "payer_name", "contract_number", "reason_code",
	"due_date", "occurrence_date", "credit_date",
	"title_amount", "tariff_amount", "interest_penalty", "discount", "rebate", "iof",
	"paid_amount", "net_amount", "other_expenses", "other_credits", "created_at",
}

// generatedRow mirrors what a SELECT returns for inserted params.
func generatedRow(p generated.CreateTransactionsParams) generated.Transaction {
	return generated.Transaction(p)
}

// nullRow is a stored transaction whose optional columns are all NULL.
func nullRow(id string) []any {
	row := []any{id, "API", "PENDENTE", "001", "api.ret"}
	for i := 0; i < 18; i++ {
		row = append(row, "")
	}
	for i := 0; i < 14; i++ {
		row = append(row, nil)
	}
	return row
}

func beginTx(t *testing.T, mock pgxmock.PgxPoolIface) *Tx {
	t.Helper()
	mock.ExpectBeginTx(writeTxOptions)
	tx, err := newTxManagerWithPool(mock).Begin(context.Background())
	require.NoError(t, err)
	return tx.(*Tx)
}

func TestTransactionRepository_CreateBatch(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)
	tx := beginTx(t, mock)

	mock.ExpectCopyFrom(pgx.Identifier{"transactions"}, transactionColumns).WillReturnResult(2)
	mock.ExpectCommit()

	occurred := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	batch := []*domain.Transaction{
		{ID: "a", Origin: domain.OriginAPI, NossoNumero: "001", OccurrenceDate: &occurred},
		{ID: "b", Origin: domain.OriginAPI, NossoNumero: "002", Status: domain.StatusDivergent},
	}

	n, err := repo.CreateBatch(context.Background(), tx, batch)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, domain.StatusPending, batch[0].Status)
	assert.Equal(t, domain.StatusDivergent, batch[1].Status)

	require.NoError(t, tx.Commit(context.Background()))
	assertExpectations(t, mock)
}

func TestTransactionRepository_CreateBatchEmpty(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)

	n, err := repo.CreateBatch(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assertExpectations(t, mock)
}

func TestTransactionRepository_UpdateStatuses(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)
	tx := beginTx(t, mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions SET status = $1 WHERE id = ANY($2::text[])")).
		WithArgs("CONCILIADO", []string{"a", "b"}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := repo.UpdateStatuses(context.Background(), tx, domain.StatusConciliated, []string{"a", "b"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.UpdateStatuses(context.Background(), tx, domain.StatusDivergent, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	assertExpectations(t, mock)
}

func TestTransactionRepository_LockReconciliation(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)
	tx := beginTx(t, mock)

	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).WillReturnResult(pgxmock.NewResult("SELECT", 1))

	require.NoError(t, repo.LockReconciliation(context.Background(), tx))
	assertExpectations(t, mock)
}

func TestTransactionRepository_GetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions WHERE id = $1")).
		WithArgs("tx-1").
		WillReturnRows(mock.NewRows(transactionColumns).AddRow(nullRow("tx-1")...))
	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", got.ID)
	assert.Equal(t, domain.OriginAPI, got.Origin)
	assert.False(t, got.PaidAmount.Valid)
	assert.Nil(t, got.OccurrenceDate)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	assertExpectations(t, mock)
}

func TestTransactionRepository_FileSources(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM transactions WHERE file_source = $1)")).
		WithArgs("api.ret").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT file_source FROM transactions")).
		WillReturnRows(mock.NewRows([]string{"file_source"}))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transactions WHERE file_source = ANY($1::text[])")).
		WithArgs([]string{"api.ret"}).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	exists, err := repo.ExistsByFileSource(context.Background(), "api.ret")
	require.NoError(t, err)
	assert.True(t, exists)

	files, err := repo.ListFileSources(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)

	n, err := repo.DeleteByFileSources(context.Background(), []string{"api.ret"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = repo.DeleteByFileSources(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	assertExpectations(t, mock)
}

func TestTransactionRepository_SearchEscapesPattern(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM transactions")).
		WithArgs(`50\%`, pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY payer_name, nosso_numero, origin, id")).
		WithArgs(`50\%`, pgxmock.AnyArg(), int32(10), int32(0)).
		WillReturnRows(mock.NewRows(transactionColumns))

	amount := decimal.RequireFromString("10")
	page, err := repo.Search(context.Background(), domain.SearchQuery{PayerName: "50%", PaidAmount: &amount, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)

	assertExpectations(t, mock)
}

func TestTransactionRepository_ListByOriginError(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE origin = $1 ORDER BY created_at, id")).
		WithArgs("API").
		WillReturnError(boom)

	_, err := repo.ListByOrigin(context.Background(), domain.OriginAPI)
	assert.ErrorIs(t, err, boom)
	assertExpectations(t, mock)
}
