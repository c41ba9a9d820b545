package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeRange(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	t.Run("ordered range kept", func(t *testing.T) {
		r := NormalizeRange(day(2023, 1, 1), day(2023, 1, 10), now)
		if !r.Start.Equal(*day(2023, 1, 1)) || !r.End.Equal(*day(2023, 1, 10)) {
			t.Fatalf("unexpected range %s", r)
		}
	})

	t.Run("reversed range swapped", func(t *testing.T) {
		r := NormalizeRange(day(2023, 1, 10), day(2023, 1, 1), now)
		if !r.Start.Equal(*day(2023, 1, 1)) || !r.End.Equal(*day(2023, 1, 10)) {
			t.Fatalf("unexpected range %s", r)
		}
	})

	t.Run("missing bounds default to yesterday", func(t *testing.T) {
		r := NormalizeRange(nil, nil, now)
		yesterday := *day(2024, 3, 14)
		if !r.Start.Equal(yesterday) || !r.End.Equal(yesterday) {
			t.Fatalf("unexpected range %s", r)
		}
	})

	t.Run("missing end after start is swapped", func(t *testing.T) {
		r := NormalizeRange(day(2024, 3, 20), nil, now)
		if !r.Start.Equal(*day(2024, 3, 14)) || !r.End.Equal(*day(2024, 3, 20)) {
			t.Fatalf("unexpected range %s", r)
		}
	})
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{Start: *day(2024, 1, 1), End: *day(2024, 1, 31)}

	if !r.Contains(time.Date(2024, 1, 31, 18, 0, 0, 0, time.UTC)) {
		t.Fatal("expected end day to be inclusive")
	}
	if r.Contains(*day(2024, 2, 1)) {
		t.Fatal("expected day after end to be excluded")
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(day(2023, 12, 25)); got != "25/12/2023" {
		t.Fatalf("expected 25/12/2023, got %q", got)
	}
	if got := FormatDate(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestParseQueryDate(t *testing.T) {
	got, err := ParseQueryDate("2024-01-01")
	if err != nil || !got.Equal(*day(2024, 1, 1)) {
		t.Fatalf("unexpected result %v (%v)", got, err)
	}

	got, err = ParseQueryDate("")
	if err != nil || got != nil {
		t.Fatalf("expected nil for empty value, got %v (%v)", got, err)
	}

	if _, err := ParseQueryDate("01/01/2024"); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}
