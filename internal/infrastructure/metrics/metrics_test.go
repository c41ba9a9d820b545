package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
)

var _ usecase.Metrics = (*Metrics)(nil)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.FilesImported == nil || m.HTTPRequests == nil || m.StoreErrors == nil || m.StoreRetries == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.RecordStoreError("list_window")

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()
	New(registry)
}

func TestRecordImport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordImport(domain.OriginAPI, 3, map[string]int{"short_line": 2, "unparseable": 0})
	m.RecordImport(domain.OriginAPI, 1, nil)

	if got := testutil.ToFloat64(m.FilesImported.WithLabelValues("API")); got != 2 {
		t.Fatalf("expected 2 files imported, got %v", got)
	}
	if got := testutil.ToFloat64(m.RecordsDecoded.WithLabelValues("API")); got != 4 {
		t.Fatalf("expected 4 records decoded, got %v", got)
	}
	if got := testutil.ToFloat64(m.LinesSkipped.WithLabelValues("short_line")); got != 2 {
		t.Fatalf("expected 2 skipped lines, got %v", got)
	}
	if got := testutil.CollectAndCount(m.LinesSkipped); got != 1 {
		t.Fatalf("expected zero-count reasons to stay unrecorded, got %d series", got)
	}
}

func TestRecordStampingAndComparison(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordStamping(250*time.Millisecond, map[domain.ReconciliationStatus]int{
		domain.StatusConciliated: 4,
		domain.StatusDivergent:   1,
	})
	m.RecordComparison(map[domain.ComparisonStatus]int{
		domain.ComparisonOnlyAPI: 2,
	})

	if got := testutil.ToFloat64(m.StampingRuns); got != 1 {
		t.Fatalf("expected one stamping run, got %v", got)
	}
	if got := testutil.ToFloat64(m.StatusUpdates.WithLabelValues("CONCILIADO")); got != 4 {
		t.Fatalf("expected 4 conciliated updates, got %v", got)
	}
	if got := testutil.ToFloat64(m.ComparisonResults.WithLabelValues("SOMENTE_API")); got != 2 {
		t.Fatalf("expected 2 API-only results, got %v", got)
	}
}

func TestRecordCache(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordCache(true)
	m.RecordCache(false)
	m.RecordCache(false)

	if got := testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")); got != 1 {
		t.Fatalf("expected 1 hit, got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss")); got != 2 {
		t.Fatalf("expected 2 misses, got %v", got)
	}
}

func TestRecordAuditAndAuthFailures(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordAudit(domain.AuditActionSearch, domain.AuditStatusSuccess)
	m.RecordAudit(domain.AuditActionSearch, domain.AuditStatusSuccess)
	m.RecordAuthFailure("invalid_token")

	if got := testutil.ToFloat64(m.AuditLogsCreated.WithLabelValues("transaction.search", "success")); got != 2 {
		t.Fatalf("expected 2 audit logs, got %v", got)
	}
	if got := testutil.ToFloat64(m.AuthFailures.WithLabelValues("invalid_token")); got != 1 {
		t.Fatalf("expected 1 auth failure, got %v", got)
	}
}
