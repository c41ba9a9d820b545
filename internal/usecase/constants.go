package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	DefaultTransactionTimeout = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultStatsCacheTTL bounds how long dashboard stats stay cached
	DefaultStatsCacheTTL = 5 * time.Minute

	// MaxExportRows caps listings rendered into export files
	MaxExportRows = 100000
)
