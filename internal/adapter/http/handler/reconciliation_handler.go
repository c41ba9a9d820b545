package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/cnabrecon/internal/adapter/http/dto"
	"github.com/iho/cnabrecon/internal/adapter/report"
	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	PerformReconciliation(ctx context.Context) (*usecase.StampReport, error)
	CompareTransactions(ctx context.Context, input usecase.CompareInput) (*usecase.ComparisonReport, error)
}

// ReconciliationHandler handles stamping and comparison requests.
type ReconciliationHandler struct {
	reconciliationUC ReconciliationService
	auditor          Auditor
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC ReconciliationService, auditor Auditor) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliationUC: reconciliationUC,
		auditor:          auditor,
	}
}

// Stamp runs a status stamping pass over every stored transaction.
func (h *ReconciliationHandler) Stamp(w http.ResponseWriter, r *http.Request) {
	stamp, err := h.reconciliationUC.PerformReconciliation(r.Context())
	if err != nil {
		writeDomainError(w, "failed to reconcile", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StampReportFromUseCase(stamp))
}

// Compare pairs API and GERAL transactions of a date window.
func (h *ReconciliationHandler) Compare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, err := dto.ParseWindowQuery(r.URL.Query())
	if err != nil {
		writeDomainError(w, "invalid query", err)
		return
	}

	onlyDivergent := parseBoolQuery(r, "only_divergent")
	filters := query.Filters()
	filters["only_divergent"] = onlyDivergent
	log := newAuditLog(r, domain.AuditActionCompare, "", filters)

	result, err := h.reconciliationUC.CompareTransactions(r.Context(), query.ToCompareInput(onlyDivergent))
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeDomainError(w, "failed to compare transactions", err)
		return
	}
	audit(r.Context(), h.auditor, log, start, len(result.Results), nil)

	writeJSON(w, http.StatusOK, dto.ComparisonReportFromUseCase(result))
}

// Export renders a comparison as an XLSX or CSV download.
func (h *ReconciliationHandler) Export(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeDomainError(w, "invalid format", err)
		return
	}

	query, err := dto.ParseWindowQuery(r.URL.Query())
	if err != nil {
		writeDomainError(w, "invalid query", err)
		return
	}

	onlyDivergent := parseBoolQuery(r, "only_divergent")
	filters := query.Filters()
	filters["only_divergent"] = onlyDivergent
	filters["format"] = string(format)
	log := newAuditLog(r, domain.AuditActionExport, "", filters)

	result, err := h.reconciliationUC.CompareTransactions(r.Context(), query.ToCompareInput(onlyDivergent))
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeDomainError(w, "failed to compare transactions", err)
		return
	}

	var data []byte
	if format == report.FormatCSV {
		data, err = report.ComparisonCSV(result.Results)
	} else {
		data, err = report.ComparisonWorkbook(result.Results)
	}
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeError(w, http.StatusInternalServerError, "failed to render export", err.Error())
		return
	}
	audit(r.Context(), h.auditor, log, start, len(result.Results), nil)

	writeAttachment(w, format.ContentType(), report.ComparisonFileName(format, result.Range), data)
}
