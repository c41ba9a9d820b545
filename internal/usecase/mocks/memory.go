package mocks

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
)

// MemoryTransactionRepository is an in-memory usecase.TransactionRepository.
// Writes made through a MemoryTx are applied immediately.
type MemoryTransactionRepository struct {
	mu    sync.RWMutex
	items []*domain.Transaction

	// Err, when set, is returned by every read.
	Err error
	// StatusWrites counts UpdateStatuses calls.
	StatusWrites int
	// Locks counts LockReconciliation calls.
	Locks int
}

// NewMemoryTransactionRepository creates a repository holding transactions.
func NewMemoryTransactionRepository(transactions ...*domain.Transaction) *MemoryTransactionRepository {
	return &MemoryTransactionRepository{items: transactions}
}

// All returns copies of every stored transaction.
func (r *MemoryTransactionRepository) All() []domain.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Transaction, len(r.items))
	for i, t := range r.items {
		out[i] = *t
	}
	return out
}

// StatusOf returns the stored status of the record with id.
func (r *MemoryTransactionRepository) StatusOf(id string) domain.ReconciliationStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.items {
		if t.ID == id {
			return t.Status
		}
	}
	return ""
}

func (r *MemoryTransactionRepository) filter(keep func(*domain.Transaction) bool) []*domain.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Transaction{}
	for _, t := range r.items {
		if keep(t) {
			c := *t
			out = append(out, &c)
		}
	}
	return out
}

func (r *MemoryTransactionRepository) CreateBatch(_ context.Context, _ usecase.Transaction, transactions []*domain.Transaction) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range transactions {
		c := *t
		r.items = append(r.items, &c)
	}
	return int64(len(transactions)), nil
}

func (r *MemoryTransactionRepository) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	found := r.filter(func(t *domain.Transaction) bool { return t.ID == id })
	if len(found) == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return found[0], nil
}

func (r *MemoryTransactionRepository) ListByOrigin(_ context.Context, origin domain.Origin) ([]*domain.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.filter(func(t *domain.Transaction) bool { return t.Origin == origin }), nil
}

func (r *MemoryTransactionRepository) FindMatches(_ context.Context, origin domain.Origin, nossoNumero string, paidAmount decimal.Decimal, occurrenceDate time.Time) ([]*domain.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.filter(func(t *domain.Transaction) bool {
		return t.Origin == origin &&
			t.NossoNumero == nossoNumero &&
			t.PaidAmount.Valid && t.PaidAmount.Decimal.Equal(paidAmount) &&
			t.OccurrenceDate != nil && domain.SameDay(*t.OccurrenceDate, occurrenceDate)
	}), nil
}

func (r *MemoryTransactionRepository) ListByWindow(_ context.Context, field domain.DateField, dr domain.DateRange) ([]*domain.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.filter(func(t *domain.Transaction) bool {
		d := t.DateFor(field)
		return d != nil && dr.Contains(*d)
	}), nil
}

func (r *MemoryTransactionRepository) ListPage(ctx context.Context, q domain.PeriodQuery) (*domain.Page, error) {
	items, err := r.ListByWindow(ctx, q.DateField, q.Range)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, t := range items {
		switch q.Filter {
		case domain.ListFilterDivergent:
			if t.Status != domain.StatusDivergent {
				continue
			}
		case domain.ListFilterAPI, domain.ListFilterGeral:
			if string(t.Origin) != string(q.Filter) {
				continue
			}
		}
		kept = append(kept, t)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].PayerName < kept[j].PayerName })
	return paginate(kept, q.Limit, q.Offset), nil
}

func (r *MemoryTransactionRepository) Search(_ context.Context, q domain.SearchQuery) (*domain.Page, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	items := r.filter(func(t *domain.Transaction) bool {
		if q.PayerName != "" && !strings.Contains(strings.ToLower(t.PayerName), strings.ToLower(q.PayerName)) {
			return false
		}
		if q.PaidAmount != nil && !(t.PaidAmount.Valid && t.PaidAmount.Decimal.Equal(*q.PaidAmount)) {
			return false
		}
		return true
	})
	return paginate(items, q.Limit, q.Offset), nil
}

func paginate(items []*domain.Transaction, limit, offset int) *domain.Page {
	page := &domain.Page{Total: int64(len(items)), Limit: limit, Offset: offset, Items: []*domain.Transaction{}}
	if offset >= len(items) {
		return page
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page.Items = items[offset:end]
	return page
}

func (r *MemoryTransactionRepository) WindowTotals(ctx context.Context, field domain.DateField, dr domain.DateRange) (*domain.WindowTotals, error) {
	items, err := r.ListByWindow(ctx, field, dr)
	if err != nil {
		return nil, err
	}

	totals := &domain.WindowTotals{}
	for _, t := range items {
		switch t.Status {
		case domain.StatusDivergent:
			totals.CountDivergent++
		case domain.StatusConciliated:
			totals.CountConciliated++
		}

		if t.Origin == domain.OriginAPI {
			totals.PaidAPI = totals.PaidAPI.Add(t.PaidAmount.Decimal)
			continue
		}

		g := &totals.Geral
		totals.PaidGeral = totals.PaidGeral.Add(t.PaidAmount.Decimal)
		g.Rebate = g.Rebate.Add(t.Rebate)
		g.Discount = g.Discount.Add(t.Discount)
		g.IOF = g.IOF.Add(t.IOF)
		g.InterestPenalty = g.InterestPenalty.Add(t.InterestPenalty)
		g.OtherExpenses = g.OtherExpenses.Add(t.OtherExpenses)
		g.OtherCredits = g.OtherCredits.Add(t.OtherCredits)
		g.NetAmount = g.NetAmount.Add(t.NetAmount)
		g.PaidAmount = g.PaidAmount.Add(t.PaidAmount.Decimal)
		g.TariffAmount = g.TariffAmount.Add(t.TariffAmount)
		g.TitleAmount = g.TitleAmount.Add(t.TitleAmount)
	}
	return totals, nil
}

func (r *MemoryTransactionRepository) UpdateStatuses(_ context.Context, _ usecase.Transaction, status domain.ReconciliationStatus, ids []string) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.StatusWrites++

	var n int64
	for _, t := range r.items {
		if want[t.ID] {
			t.Status = status
			n++
		}
	}
	return n, nil
}

func (r *MemoryTransactionRepository) LockReconciliation(context.Context, usecase.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Locks++
	return nil
}

func (r *MemoryTransactionRepository) ExistsByFileSource(_ context.Context, fileSource string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	return len(r.filter(func(t *domain.Transaction) bool { return t.FileSource == fileSource })) > 0, nil
}

func (r *MemoryTransactionRepository) ListFileSources(context.Context) ([]string, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	seen := map[string]bool{}
	out := []string{}
	for _, t := range r.filter(func(*domain.Transaction) bool { return true }) {
		if t.FileSource != "" && !seen[t.FileSource] {
			seen[t.FileSource] = true
			out = append(out, t.FileSource)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *MemoryTransactionRepository) DeleteByFileSources(_ context.Context, fileSources []string) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}

	drop := make(map[string]bool, len(fileSources))
	for _, f := range fileSources {
		drop[f] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, t := range r.items {
		if !drop[t.FileSource] {
			kept = append(kept, t)
		}
	}
	n := int64(len(r.items) - len(kept))
	r.items = kept
	return n, nil
}

func (r *MemoryTransactionRepository) DeleteAll(context.Context) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.items))
	r.items = nil
	return n, nil
}

// MemoryTx is a no-op usecase.Transaction that records its outcome.
type MemoryTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MemoryTx) Commit(context.Context) error {
	t.Committed = true
	return nil
}

func (t *MemoryTx) Rollback(context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MemoryTxManager hands out MemoryTx values.
type MemoryTxManager struct {
	Txs []*MemoryTx
}

func (m *MemoryTxManager) Begin(context.Context) (usecase.Transaction, error) {
	tx := &MemoryTx{}
	m.Txs = append(m.Txs, tx)
	return tx, nil
}

// DirectRetrier runs the operation once.
type DirectRetrier struct{}

func (DirectRetrier) Retry(_ context.Context, operation func() error) error {
	return operation()
}

// SequenceIDGenerator returns prefix-1, prefix-2, ...
type SequenceIDGenerator struct {
	Prefix string
	mu     sync.Mutex
	n      int
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.Prefix + "-" + strconv.Itoa(g.n)
}
