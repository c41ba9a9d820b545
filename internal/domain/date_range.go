package domain

import (
	"fmt"
	"strings"
	"time"
)

// DisplayDateLayout is the day-first layout used in reports.
const DisplayDateLayout = "02/01/2006"

// QueryDateLayout is the layout accepted by query parameters.
const QueryDateLayout = "2006-01-02"

// DateField selects which transaction date a window is keyed by.
type DateField string

const (
	DateFieldOccurrence DateField = "occurrence"
	DateFieldCredit     DateField = "credit"
)

// DateFieldFor maps the use-credit-date flag to a DateField.
func DateFieldFor(useCreditDate bool) DateField {
	if useCreditDate {
		return DateFieldCredit
	}

	return DateFieldOccurrence
}

// DateRange is an inclusive calendar-day window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NormalizeRange fills missing bounds with the day before now and swaps
// reversed bounds. Both bounds are truncated to midnight UTC.
func NormalizeRange(start, end *time.Time, now time.Time) DateRange {
	yesterday := TruncateDay(now).AddDate(0, 0, -1)

	r := DateRange{Start: yesterday, End: yesterday}
	if start != nil {
		r.Start = TruncateDay(*start)
	}
	if end != nil {
		r.End = TruncateDay(*end)
	}

	if r.Start.After(r.End) {
		r.Start, r.End = r.End, r.Start
	}

	return r
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateDay(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// String renders the range for logs and report titles.
func (r DateRange) String() string {
	return fmt.Sprintf("%s - %s", FormatDate(&r.Start), FormatDate(&r.End))
}

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseQueryDate parses a YYYY-MM-DD value. An empty value yields nil.
func ParseQueryDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(QueryDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDateRange, s)
	}

	return &t, nil
}

// FormatDate renders a date as DD/MM/YYYY, or an empty string when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(DisplayDateLayout)
}
