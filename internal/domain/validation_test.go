package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateFileName(t *testing.T) {
	t.Parallel()

	if err := ValidateFileName("RET_API_20240101.ret"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := ValidateFileName("  "); !errors.Is(err, ErrEmptyFileName) {
		t.Fatalf("expected ErrEmptyFileName, got %v", err)
	}

	if err := ValidateFileName("../etc/passwd"); !errors.Is(err, ErrInvalidFileName) {
		t.Fatalf("expected ErrInvalidFileName, got %v", err)
	}

	if err := ValidateFileName(strings.Repeat("a", MaxFileNameLength+1)); !errors.Is(err, ErrInvalidFileName) {
		t.Fatalf("expected ErrInvalidFileName, got %v", err)
	}
}

func TestValidateSearchAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateSearchAmount(nil); err != nil {
		t.Fatalf("expected nil amount to pass, got %v", err)
	}

	negative := decimal.NewFromInt(-1)
	if err := ValidateSearchAmount(&negative); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestValidateSearchTerm(t *testing.T) {
	t.Parallel()

	term, err := ValidateSearchTerm("  martins ")
	if err != nil || term != "martins" {
		t.Fatalf("unexpected result %q (%v)", term, err)
	}

	if _, err := ValidateSearchTerm(strings.Repeat("x", MaxSearchTermLength+1)); !errors.Is(err, ErrSearchTermTooLong) {
		t.Fatalf("expected ErrSearchTermTooLong, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset, _ := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Fatalf("expected defaults, got limit=%d offset=%d", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Fatalf("expected clamp to 1000, got %d", limit)
	}
}
