package usecase

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/cnabrecon/internal/domain"
)

// storeFailure records a repository failure and wraps it with
// domain.ErrStoreUnavailable. Not-found errors pass through unchanged.
func storeFailure(m Metrics, logger zerolog.Logger, op string, err error) error {
	if errors.Is(err, domain.ErrTransactionNotFound) {
		return err
	}

	m.RecordStoreError(op)
	logger.Error().Err(err).Str("operation", op).Msg("transaction store failure")

	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}

	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}
