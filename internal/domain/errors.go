package domain

import "errors"

var (
	// Transaction errors
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrMissingNossoNumero    = errors.New("transaction has no nosso numero")
	ErrMissingPaidAmount     = errors.New("transaction has no paid amount")
	ErrMissingOccurrenceDate = errors.New("transaction has no occurrence date")
	ErrInvalidOrigin         = errors.New("origin must be API or GERAL")

	// Import errors
	ErrFileAlreadyImported = errors.New("file already imported")
	ErrEmptyFileName       = errors.New("file name is required")

	// Reconciliation errors
	ErrStoreUnavailable = errors.New("transaction store unavailable")
	ErrDuplicateRecord  = errors.New("duplicate record for the same origin")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvalidFilter    = errors.New("invalid listing filter")

	// Cache errors
	ErrCacheMiss = errors.New("cache miss")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
