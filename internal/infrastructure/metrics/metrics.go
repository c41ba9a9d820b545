package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/cnabrecon/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Import metrics
	FilesImported  *prometheus.CounterVec
	RecordsDecoded *prometheus.CounterVec
	LinesSkipped   *prometheus.CounterVec

	// Reconciliation metrics
	StampingRuns      prometheus.Counter
	StampingDuration  prometheus.Histogram
	StatusUpdates     *prometheus.CounterVec
	ComparisonRuns    prometheus.Counter
	ComparisonResults *prometheus.CounterVec

	// Store metrics
	StoreErrors  *prometheus.CounterVec
	StoreRetries prometheus.Counter

	// Cache metrics
	CacheRequests *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates all Prometheus metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		// Import metrics
		FilesImported: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_files_imported_total",
				Help: "Total number of return files imported",
			},
			[]string{"origin"},
		),
		RecordsDecoded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_records_decoded_total",
				Help: "Total number of transactions decoded from return files",
			},
			[]string{"origin"},
		),
		LinesSkipped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_lines_skipped_total",
				Help: "Total number of return file lines skipped by reason",
			},
			[]string{"reason"},
		),

		// Reconciliation metrics
		StampingRuns: f.NewCounter(prometheus.CounterOpts{
			Name: "cnabrecon_stamping_runs_total",
			Help: "Total number of status stamping passes",
		}),
		StampingDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cnabrecon_stamping_duration_seconds",
			Help:    "Duration of status stamping passes",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		StatusUpdates: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_status_updates_total",
				Help: "Total number of transaction status writes by status",
			},
			[]string{"status"},
		),
		ComparisonRuns: f.NewCounter(prometheus.CounterOpts{
			Name: "cnabrecon_comparison_runs_total",
			Help: "Total number of windowed comparisons",
		}),
		ComparisonResults: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_comparison_results_total",
				Help: "Total number of comparison results by status",
			},
			[]string{"status"},
		),

		// Store metrics
		StoreErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_store_errors_total",
				Help: "Total transaction store failures by operation",
			},
			[]string{"operation"},
		),
		StoreRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "cnabrecon_store_retries_total",
			Help: "Total store operations retried after a transient failure",
		}),

		// Cache metrics
		CacheRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_stats_cache_requests_total",
				Help: "Total dashboard stats cache lookups by result",
			},
			[]string{"result"},
		),

		// API metrics
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cnabrecon_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "cnabrecon_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Rate limiting metrics
		RateLimitHits: f.NewCounter(prometheus.CounterOpts{
			Name: "cnabrecon_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),

		// Authentication metrics
		AuthFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Audit metrics
		AuditLogsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cnabrecon_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}

// RecordImport counts one imported file with its decoded and skipped lines.
func (m *Metrics) RecordImport(origin domain.Origin, records int, skipped map[string]int) {
	m.FilesImported.WithLabelValues(string(origin)).Inc()
	m.RecordsDecoded.WithLabelValues(string(origin)).Add(float64(records))
	for reason, n := range skipped {
		if n > 0 {
			m.LinesSkipped.WithLabelValues(reason).Add(float64(n))
		}
	}
}

// RecordStamping counts one stamping pass.
func (m *Metrics) RecordStamping(duration time.Duration, updates map[domain.ReconciliationStatus]int) {
	m.StampingRuns.Inc()
	m.StampingDuration.Observe(duration.Seconds())
	for status, n := range updates {
		m.StatusUpdates.WithLabelValues(string(status)).Add(float64(n))
	}
}

// RecordComparison counts one windowed comparison.
func (m *Metrics) RecordComparison(results map[domain.ComparisonStatus]int) {
	m.ComparisonRuns.Inc()
	for status, n := range results {
		m.ComparisonResults.WithLabelValues(string(status)).Add(float64(n))
	}
}

// RecordStoreError counts a failed store operation.
func (m *Metrics) RecordStoreError(operation string) {
	m.StoreErrors.WithLabelValues(operation).Inc()
}

// RecordCache counts a stats cache lookup.
func (m *Metrics) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}

// RecordAuthFailure counts a rejected bearer token.
func (m *Metrics) RecordAuthFailure(reason string) {
	m.AuthFailures.WithLabelValues(reason).Inc()
}

// RecordAudit counts a written audit log.
func (m *Metrics) RecordAudit(action domain.AuditAction, status domain.AuditStatus) {
	m.AuditLogsCreated.WithLabelValues(string(action), string(status)).Inc()
}
