package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/cnabrecon/internal/adapter/http/dto"
	"github.com/iho/cnabrecon/internal/adapter/report"
	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	ListPeriod(ctx context.Context, input usecase.PeriodInput) (*domain.Page, error)
	ExportPeriod(ctx context.Context, input usecase.PeriodInput) (*domain.Page, domain.DateRange, error)
	Search(ctx context.Context, input usecase.SearchInput) (*domain.Page, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ClearAll(ctx context.Context) (int64, error)
}

// TransactionHandler handles transaction listing requests.
type TransactionHandler struct {
	transactionUC TransactionService
	auditor       Auditor
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, auditor Auditor) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
		auditor:       auditor,
	}
}

// List returns one page of a period listing.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, filter, err := parsePeriodQuery(r)
	if err != nil {
		writeDomainError(w, "invalid query", err)
		return
	}

	limit := parseIntQuery(r, "limit", domain.DefaultPageLimit)
	offset := parseIntQuery(r, "offset", 0)

	filters := query.Filters()
	filters["filter"] = string(filter)
	log := newAuditLog(r, domain.AuditActionList, "", filters)

	page, err := h.transactionUC.ListPeriod(r.Context(), query.ToPeriodInput(filter, limit, offset))
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeDomainError(w, "failed to list transactions", err)
		return
	}
	audit(r.Context(), h.auditor, log, start, len(page.Items), nil)

	writeJSON(w, http.StatusOK, dto.PageFromDomain(page))
}

// Export downloads the period listing as CSV with lag days.
func (h *TransactionHandler) Export(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, filter, err := parsePeriodQuery(r)
	if err != nil {
		writeDomainError(w, "invalid query", err)
		return
	}

	filters := query.Filters()
	filters["filter"] = string(filter)
	log := newAuditLog(r, domain.AuditActionPeriodExport, "", filters)

	page, _, err := h.transactionUC.ExportPeriod(r.Context(), query.ToPeriodInput(filter, 0, 0))
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeDomainError(w, "failed to export transactions", err)
		return
	}

	data, err := report.PeriodCSV(page.Items)
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeError(w, http.StatusInternalServerError, "failed to render export", err.Error())
		return
	}
	audit(r.Context(), h.auditor, log, start, len(page.Items), nil)

	writeAttachment(w, report.FormatCSV.ContentType(), report.PeriodCSVFileName, data)
}

// Search looks transactions up by payer name and paid amount.
func (h *TransactionHandler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	amount, err := dto.ParseAmountQuery(r.URL.Query().Get("amount"))
	if err != nil {
		writeDomainError(w, "invalid amount", err)
		return
	}

	payer := r.URL.Query().Get("payer")
	filters := domain.JSON{}
	if amount != nil {
		filters["amount"] = amount.String()
	}
	log := newAuditLog(r, domain.AuditActionSearch, payer, filters)

	page, err := h.transactionUC.Search(r.Context(), usecase.SearchInput{
		PayerName:  payer,
		PaidAmount: amount,
		Limit:      parseIntQuery(r, "limit", domain.DefaultPageLimit),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeDomainError(w, "failed to search transactions", err)
		return
	}
	audit(r.Context(), h.auditor, log, start, len(page.Items), nil)

	writeJSON(w, http.StatusOK, dto.PageFromDomain(page))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	t, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(t))
}

// Clear deletes every stored transaction.
func (h *TransactionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := newAuditLog(r, domain.AuditActionClearAll, "", nil)

	n, err := h.transactionUC.ClearAll(r.Context())
	if err != nil {
		audit(r.Context(), h.auditor, log, start, 0, err)
		writeDomainError(w, "failed to clear transactions", err)
		return
	}
	audit(r.Context(), h.auditor, log, start, int(n), nil)

	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: n})
}

func parsePeriodQuery(r *http.Request) (dto.WindowQuery, domain.ListFilter, error) {
	query, err := dto.ParseWindowQuery(r.URL.Query())
	if err != nil {
		return query, "", err
	}

	filter, err := domain.ParseListFilter(r.URL.Query().Get("filter"))
	if err != nil {
		return query, "", err
	}

	return query, filter, nil
}
