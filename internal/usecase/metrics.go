package usecase

import (
	"time"

	"github.com/iho/cnabrecon/internal/domain"
)

type nopMetrics struct{}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return nopMetrics{} }

func (nopMetrics) RecordImport(domain.Origin, int, map[string]int)                   {}
func (nopMetrics) RecordStamping(time.Duration, map[domain.ReconciliationStatus]int) {}
func (nopMetrics) RecordComparison(map[domain.ComparisonStatus]int)                  {}
func (nopMetrics) RecordStoreError(string)                                           {}
func (nopMetrics) RecordCache(bool)                                                  {}
func (nopMetrics) RecordAudit(domain.AuditAction, domain.AuditStatus)                {}
