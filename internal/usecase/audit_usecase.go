package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/cnabrecon/internal/domain"
)

// AuditUseCase records and lists query audit entries.
type AuditUseCase struct {
	repo    AuditRepository
	idGen   IDGenerator
	metrics Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(repo AuditRepository, idGen IDGenerator, metrics Metrics, logger zerolog.Logger) *AuditUseCase {
	if metrics == nil {
		metrics = NopMetrics()
	}

	return &AuditUseCase{
		repo:    repo,
		idGen:   idGen,
		metrics: metrics,
		logger:  logger.With().Str("component", "audit").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Record stores an audit entry. Failures are logged and never surface to
// the audited request.
func (uc *AuditUseCase) Record(ctx context.Context, log *domain.AuditLog) {
	if log.ID == "" {
		log.ID = uc.idGen.Generate()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = uc.now()
	}
	if log.Status == "" {
		log.Status = domain.AuditStatusSuccess
	}

	if err := uc.repo.Create(ctx, log); err != nil {
		uc.logger.Error().Err(err).Str("action", string(log.Action)).Msg("failed to record audit log")
		return
	}

	uc.metrics.RecordAudit(log.Action, log.Status)
}

// List returns audit entries, newest first.
func (uc *AuditUseCase) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)

	logs, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, storeFailure(uc.metrics, uc.logger, "list_audit", err)
	}

	return logs, nil
}
