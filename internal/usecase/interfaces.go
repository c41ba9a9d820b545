package usecase

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
)

// TransactionRepository defines data access for decoded transactions.
type TransactionRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, transactions []*domain.Transaction) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByOrigin(ctx context.Context, origin domain.Origin) ([]*domain.Transaction, error)
	FindMatches(ctx context.Context, origin domain.Origin, nossoNumero string, paidAmount decimal.Decimal, occurrenceDate time.Time) ([]*domain.Transaction, error)
	ListByWindow(ctx context.Context, field domain.DateField, r domain.DateRange) ([]*domain.Transaction, error)
	ListPage(ctx context.Context, q domain.PeriodQuery) (*domain.Page, error)
	Search(ctx context.Context, q domain.SearchQuery) (*domain.Page, error)
	WindowTotals(ctx context.Context, field domain.DateField, r domain.DateRange) (*domain.WindowTotals, error)
	UpdateStatuses(ctx context.Context, tx Transaction, status domain.ReconciliationStatus, ids []string) (int64, error)
	LockReconciliation(ctx context.Context, tx Transaction) error
	ExistsByFileSource(ctx context.Context, fileSource string) (bool, error)
	ListFileSources(ctx context.Context) ([]string, error)
	DeleteByFileSources(ctx context.Context, fileSources []string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// FileDecoder turns a return file into transactions.
type FileDecoder interface {
	Decode(r io.Reader, origin domain.Origin, fileSource string) (*domain.DecodedFile, error)
}

// AuditRepository defines data access for query audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key after a failed request.
	Release(ctx context.Context, key string) error
}

// StatsInvalidator drops cached dashboard figures after data changes.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// Reconciler runs a stamping pass.
type Reconciler interface {
	PerformReconciliation(ctx context.Context) (*StampReport, error)
}

// Metrics records use case outcomes.
type Metrics interface {
	RecordImport(origin domain.Origin, records int, skipped map[string]int)
	RecordStamping(duration time.Duration, updates map[domain.ReconciliationStatus]int)
	RecordComparison(results map[domain.ComparisonStatus]int)
	RecordStoreError(operation string)
	RecordCache(hit bool)
	RecordAudit(action domain.AuditAction, status domain.AuditStatus)
}
