package handler

import (
	"context"
	"net/http"

	"github.com/iho/cnabrecon/internal/adapter/http/dto"
	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
)

// StatsService defines the behavior needed by StatsHandler.
type StatsService interface {
	GetStats(ctx context.Context, input usecase.StatsInput) (*domain.DashboardStats, error)
}

// StatsHandler handles dashboard requests.
type StatsHandler struct {
	statsUC StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsUC StatsService) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// Get returns dashboard totals for a date window.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	query, err := dto.ParseWindowQuery(r.URL.Query())
	if err != nil {
		writeDomainError(w, "invalid query", err)
		return
	}

	stats, err := h.statsUC.GetStats(r.Context(), query.ToStatsInput())
	if err != nil {
		writeDomainError(w, "failed to get stats", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsFromDomain(stats))
}
