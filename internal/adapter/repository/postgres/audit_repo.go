package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/infrastructure/postgres/generated"
)

// AuditRepository implements audit log persistence
type AuditRepository struct {
	queries *generated.Queries
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return newAuditRepository(pool)
}

func newAuditRepository(db generated.DBTX) *AuditRepository {
	return &AuditRepository{queries: generated.New(db)}
}

// Create inserts a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	var filters []byte
	if log.Filters != nil {
		var err error
		filters, err = json.Marshal(log.Filters)
		if err != nil {
			return fmt.Errorf("marshal audit filters: %w", err)
		}
	}

	return r.queries.CreateAuditLog(ctx, generated.CreateAuditLogParams{
		ID:           log.ID,
		UserID:       log.UserID,
		Action:       string(log.Action),
		Term:         log.Term,
		Filters:      filters,
		DurationMs:   log.DurationMs,
		ResultCount:  int32(log.ResultCount),
		IpAddress:    log.IPAddress,
		UserAgent:    log.UserAgent,
		RequestID:    log.RequestID,
		Status:       string(log.Status),
		ErrorMessage: log.ErrorMessage,
		CreatedAt:    timeToPgTimestamptz(log.CreatedAt),
	})
}

// List retrieves audit logs with filtering, newest first
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	rows, err := r.queries.ListAuditLogs(ctx, generated.ListAuditLogsParams{
		UserID:     filter.UserID,
		Action:     filter.Action,
		StartDate:  optionalTimestamptz(filter.StartDate),
		EndDate:    optionalTimestamptz(filter.EndDate),
		PageLimit:  int32(filter.Limit),
		PageOffset: int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		log := &domain.AuditLog{
			ID:           row.ID,
			UserID:       row.UserID,
			Action:       domain.AuditAction(row.Action),
			Term:         row.Term,
			DurationMs:   row.DurationMs,
			ResultCount:  int(row.ResultCount),
			IPAddress:    row.IpAddress,
			UserAgent:    row.UserAgent,
			RequestID:    row.RequestID,
			Status:       domain.AuditStatus(row.Status),
			ErrorMessage: row.ErrorMessage,
			CreatedAt:    row.CreatedAt.Time,
		}

		if row.Filters != nil {
			_ = json.Unmarshal(row.Filters, &log.Filters)
		}

		logs = append(logs, log)
	}

	return logs, nil
}
