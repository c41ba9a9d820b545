package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records one user query against the reconciliation data.
type AuditLog struct {
	ID           string
	UserID       string // Who ran the query
	Action       AuditAction
	Term         string // Search term or file name
	Filters      JSON   // Query parameters as submitted
	DurationMs   int64
	ResultCount  int
	IPAddress    string
	UserAgent    string
	RequestID    string
	Status       AuditStatus
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable queries
type AuditAction string

const (
	AuditActionSearch       AuditAction = "transaction.search"
	AuditActionList         AuditAction = "transaction.list"
	AuditActionView         AuditAction = "transaction.view"
	AuditActionCompare      AuditAction = "reconciliation.compare"
	AuditActionExport       AuditAction = "reconciliation.export"
	AuditActionPeriodExport AuditAction = "transaction.export"
	AuditActionImport       AuditAction = "file.import"
	AuditActionDeleteFiles  AuditAction = "file.delete"
	AuditActionClearAll     AuditAction = "transaction.clear"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a value to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	UserID    string
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}
