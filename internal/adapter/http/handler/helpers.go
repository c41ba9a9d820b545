package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iho/cnabrecon/internal/adapter/http/dto"
	"github.com/iho/cnabrecon/internal/adapter/report"
	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/infrastructure/auth"
)

// Auditor records user queries.
type Auditor interface {
	Record(ctx context.Context, log *domain.AuditLog)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError picks.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

// writeAttachment writes a downloadable file.
func writeAttachment(w http.ResponseWriter, contentType, fileName string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFileAlreadyImported):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDuplicateRecord):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidOrigin),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrEmptyFileName),
		errors.Is(err, domain.ErrInvalidFileName),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSearchTermTooLong),
		errors.Is(err, report.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseBoolQuery parses a boolean query parameter, false when absent or invalid.
func parseBoolQuery(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

// newAuditLog starts an audit entry for the request.
func newAuditLog(r *http.Request, action domain.AuditAction, term string, filters domain.JSON) *domain.AuditLog {
	return &domain.AuditLog{
		UserID:    auth.SubjectFromContext(r.Context()),
		Action:    action,
		Term:      term,
		Filters:   filters,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
		RequestID: chimiddleware.GetReqID(r.Context()),
	}
}

// audit completes an audit entry and hands it to the auditor.
func audit(ctx context.Context, a Auditor, log *domain.AuditLog, start time.Time, count int, err error) {
	if a == nil {
		return
	}

	log.DurationMs = time.Since(start).Milliseconds()
	log.ResultCount = count
	log.Status = domain.AuditStatusSuccess
	if err != nil {
		log.Status = domain.AuditStatusFailure
		log.ErrorMessage = err.Error()
	}

	a.Record(ctx, log)
}
