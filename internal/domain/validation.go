package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidFileName   = errors.New("invalid file name")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrSearchTermTooLong = errors.New("search term too long")
)

// Validation constants
const (
	MaxFileNameLength   = 255
	MaxSearchTermLength = 100
	DefaultPageLimit    = 50
	MaxPageLimit        = 1000
)

// ValidateFileName checks a file source name before import or deletion.
func ValidateFileName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return ErrEmptyFileName
	}

	if len(name) > MaxFileNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidFileName, MaxFileNameLength)
	}

	if filepath.Base(name) != name || name == "." || name == ".." {
		return fmt.Errorf("%w: path separators are not allowed", ErrInvalidFileName)
	}

	return nil
}

// ValidateSearchAmount validates an optional paid-amount search filter.
func ValidateSearchAmount(amount *decimal.Decimal) error {
	if amount == nil {
		return nil
	}

	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

// ValidateSearchTerm trims a payer search term and checks its length.
func ValidateSearchTerm(term string) (string, error) {
	term = strings.TrimSpace(term)

	if len(term) > MaxSearchTermLength {
		return "", fmt.Errorf("%w: maximum is %d characters", ErrSearchTermTooLong, MaxSearchTermLength)
	}

	return term, nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
