package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// SQLSTATE codes worth another attempt. Class 08 (connection exception)
// is matched by prefix.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrLockNotAvailable     = "55P03"
	pgClassConnection         = "08"
)

// RetryPolicy bounds how long stamping and import batches are retried.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryPolicy suits a single stamping pass or import batch.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      3,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
		MaxElapsedTime:  10 * time.Second,
	}
}

// Retrier implements usecase.Retrier with exponential backoff.
type Retrier struct {
	policy  RetryPolicy
	retries prometheus.Counter
	logger  zerolog.Logger
}

// NewRetrier creates a retrier using DefaultRetryPolicy.
func NewRetrier(logger zerolog.Logger) *Retrier {
	return NewRetrierWithPolicy(DefaultRetryPolicy(), logger)
}

// NewRetrierWithPolicy creates a retrier. Zero durations and a negative
// MaxRetries fall back to the defaults; MaxRetries of 0 disables retrying.
func NewRetrierWithPolicy(policy RetryPolicy, logger zerolog.Logger) *Retrier {
	def := DefaultRetryPolicy()
	if policy.MaxRetries < 0 {
		policy.MaxRetries = def.MaxRetries
	}
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = def.InitialInterval
	}
	if policy.MaxInterval <= 0 {
		policy.MaxInterval = def.MaxInterval
	}
	if policy.MaxElapsedTime <= 0 {
		policy.MaxElapsedTime = def.MaxElapsedTime
	}

	return &Retrier{
		policy: policy,
		logger: logger.With().Str("component", "store_retrier").Logger(),
	}
}

// WithRetryCounter counts every retried attempt in c.
func (r *Retrier) WithRetryCounter(c prometheus.Counter) *Retrier {
	r.retries = c
	return r
}

// Retry runs operation, retrying transient PostgreSQL failures.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialInterval
	b.MaxInterval = r.policy.MaxInterval
	b.MaxElapsedTime = r.policy.MaxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) || attempt >= r.policy.MaxRetries {
			return backoff.Permanent(err)
		}
		attempt++

		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_retries", r.policy.MaxRetries).
			Msg("transient store error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure, pgErrLockNotAvailable:
			return true
		}
		return strings.HasPrefix(pgErr.Code, pgClassConnection)
	}

	return pgconn.SafeToRetry(err)
}
