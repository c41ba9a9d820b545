package dto

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
)

func TestParseWindowQuery(t *testing.T) {
	values := url.Values{
		"start":           {"2024-01-01"},
		"end":             {"2024-01-31"},
		"use_credit_date": {"true"},
	}

	q, err := ParseWindowQuery(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Start == nil || !q.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", q.Start)
	}
	if q.End == nil || q.End.Day() != 31 {
		t.Fatalf("unexpected end %v", q.End)
	}
	if q.UseCreditDate == nil || !*q.UseCreditDate {
		t.Fatalf("expected use_credit_date=true, got %v", q.UseCreditDate)
	}

	in := q.ToCompareInput(true)
	if in.Start != q.Start || in.End != q.End || in.UseCreditDate != q.UseCreditDate || !in.OnlyDivergent {
		t.Fatalf("ToCompareInput() = %+v", in)
	}

	filters := q.Filters()
	if filters["start"] != "2024-01-01" || filters["end"] != "2024-01-31" || filters["use_credit_date"] != true {
		t.Fatalf("Filters() = %v", filters)
	}
}

func TestParseWindowQueryEmpty(t *testing.T) {
	q, err := ParseWindowQuery(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Start != nil || q.End != nil || q.UseCreditDate != nil {
		t.Fatalf("expected empty window, got %+v", q)
	}
	if len(q.Filters()) != 0 {
		t.Fatalf("expected no filters, got %v", q.Filters())
	}

	period := q.ToPeriodInput(domain.ListFilterGeral, 10, 20)
	if period.Filter != domain.ListFilterGeral || period.Limit != 10 || period.Offset != 20 {
		t.Fatalf("ToPeriodInput() = %+v", period)
	}
}

func TestParseWindowQueryErrors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"bad start", url.Values{"start": {"01/01/2024"}}},
		{"bad end", url.Values{"end": {"2024-13-01"}}},
		{"bad flag", url.Values{"use_credit_date": {"maybe"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWindowQuery(tt.values)
			if !errors.Is(err, domain.ErrInvalidDateRange) {
				t.Fatalf("expected ErrInvalidDateRange, got %v", err)
			}
		})
	}
}

func TestParseAmountQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *decimal.Decimal
		wantErr bool
	}{
		{name: "empty", raw: ""},
		{name: "dot", raw: "100.50", want: ptr(decimal.RequireFromString("100.5"))},
		{name: "comma", raw: "100,50", want: ptr(decimal.RequireFromString("100.5"))},
		{name: "garbage", raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmountQuery(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidAmount) {
					t.Fatalf("expected ErrInvalidAmount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseAmountQuery(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Fatalf("ParseAmountQuery(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDeleteFilesRequest_FileNames(t *testing.T) {
	req := &DeleteFilesRequest{Files: []string{" a.ret ", "b.ret", "", "a.ret"}}

	got := req.FileNames()
	if len(got) != 2 || got[0] != "a.ret" || got[1] != "b.ret" {
		t.Fatalf("FileNames() = %v", got)
	}
}

func ptr[T any](v T) *T { return &v }
