package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ListFilter narrows a period listing.
type ListFilter string

const (
	ListFilterAll       ListFilter = ""
	ListFilterDivergent ListFilter = "DIVERGENTE"
	ListFilterAPI       ListFilter = "API"
	ListFilterGeral     ListFilter = "GERAL"
)

// ParseListFilter accepts the filter values understood by period listings.
func ParseListFilter(s string) (ListFilter, error) {
	switch f := ListFilter(strings.ToUpper(strings.TrimSpace(s))); f {
	case ListFilterAll, ListFilterDivergent, ListFilterAPI, ListFilterGeral:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown filter %q", ErrInvalidFilter, s)
	}
}

// PeriodQuery selects a page of transactions inside a date window.
type PeriodQuery struct {
	Range     DateRange
	DateField DateField
	Filter    ListFilter
	Limit     int
	Offset    int
}

// SearchQuery looks transactions up by payer name and paid amount.
// Empty fields are not applied.
type SearchQuery struct {
	PayerName  string
	PaidAmount *decimal.Decimal
	Limit      int
	Offset     int
}

// Page is one slice of a listing together with the total match count.
type Page struct {
	Items  []*Transaction
	Total  int64
	Limit  int
	Offset int
}
