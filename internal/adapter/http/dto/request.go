package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
	"github.com/iho/cnabrecon/internal/usecase"
)

// WindowQuery holds the date window parameters shared by comparison,
// stats and listing endpoints.
type WindowQuery struct {
	Start         *time.Time
	End           *time.Time
	UseCreditDate *bool
}

// ParseWindowQuery reads start, end and use_credit_date from query values.
func ParseWindowQuery(values url.Values) (WindowQuery, error) {
	var q WindowQuery
	var err error

	if q.Start, err = domain.ParseQueryDate(values.Get("start")); err != nil {
		return q, fmt.Errorf("start: %w", err)
	}
	if q.End, err = domain.ParseQueryDate(values.Get("end")); err != nil {
		return q, fmt.Errorf("end: %w", err)
	}

	if raw := strings.TrimSpace(values.Get("use_credit_date")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("%w: use_credit_date must be a boolean", domain.ErrInvalidDateRange)
		}
		q.UseCreditDate = &v
	}

	return q, nil
}

// Filters returns the window as audit filters.
func (q WindowQuery) Filters() domain.JSON {
	f := domain.JSON{}
	if q.Start != nil {
		f["start"] = q.Start.Format(domain.QueryDateLayout)
	}
	if q.End != nil {
		f["end"] = q.End.Format(domain.QueryDateLayout)
	}
	if q.UseCreditDate != nil {
		f["use_credit_date"] = *q.UseCreditDate
	}
	return f
}

// ToCompareInput converts to use case input.
func (q WindowQuery) ToCompareInput(onlyDivergent bool) usecase.CompareInput {
	return usecase.CompareInput{
		Start:         q.Start,
		End:           q.End,
		UseCreditDate: q.UseCreditDate,
		OnlyDivergent: onlyDivergent,
	}
}

// ToStatsInput converts to use case input.
func (q WindowQuery) ToStatsInput() usecase.StatsInput {
	return usecase.StatsInput{
		Start:         q.Start,
		End:           q.End,
		UseCreditDate: q.UseCreditDate,
	}
}

// ToPeriodInput converts to use case input.
func (q WindowQuery) ToPeriodInput(filter domain.ListFilter, limit, offset int) usecase.PeriodInput {
	return usecase.PeriodInput{
		Start:         q.Start,
		End:           q.End,
		UseCreditDate: q.UseCreditDate,
		Filter:        filter,
		Limit:         limit,
		Offset:        offset,
	}
}

// ParseAmountQuery parses an optional decimal amount.
func ParseAmountQuery(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	// Accept the comma decimal separator used on the dashboard.
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, raw)
	}

	return &d, nil
}

// DeleteFilesRequest represents a request to delete imported files.
type DeleteFilesRequest struct {
	Files []string `json:"files"`
}

// FileNames returns the trimmed, de-duplicated file names in request order.
func (r *DeleteFilesRequest) FileNames() []string {
	seen := make(map[string]bool, len(r.Files))
	names := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		names = append(names, f)
	}
	return names
}
