package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/cnabrecon/internal/adapter/http/dto"
	"github.com/iho/cnabrecon/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// AuditHandler exposes the query audit log.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List returns audit entries, newest first.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	startDate, err := domain.ParseQueryDate(q.Get("start"))
	if err != nil {
		writeDomainError(w, "invalid query", err)
		return
	}
	endDate, err := domain.ParseQueryDate(q.Get("end"))
	if err != nil {
		writeDomainError(w, "invalid query", err)
		return
	}
	if endDate != nil {
		// Include the whole end day.
		last := endDate.AddDate(0, 0, 1).Add(-time.Microsecond)
		endDate = &last
	}

	logs, err := h.auditUC.List(r.Context(), domain.AuditFilter{
		UserID:    q.Get("user_id"),
		Action:    q.Get("action"),
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     parseIntQuery(r, "limit", domain.DefaultPageLimit),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list audit logs", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
