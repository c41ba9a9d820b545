// Package report renders reconciliation data as downloadable files.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/cnabrecon/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// PeriodCSVFileName is the attachment name of period listing exports.
const PeriodCSVFileName = "analise_datas.csv"

// ErrUnknownFormat is returned for export formats other than xlsx and csv.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses an export format, defaulting to xlsx when empty.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatXLSX, nil
	case FormatXLSX, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}

	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// ComparisonFileName names a comparison export after its window.
func ComparisonFileName(f Format, r domain.DateRange) string {
	return fmt.Sprintf("comparacao_%s_%s.%s", r.Start.Format("20060102"), r.End.Format("20060102"), f)
}

var comparisonHeader = []string{
	"Nosso Numero",
	"Status",
	"Pagador",
	"Data Ocorrencia",
	"Data Credito",
	"Valor API",
	"Valor Geral",
	"Divergencias",
}

func comparisonRow(r *domain.ComparisonResult) []string {
	var apiPaid, geralPaid decimal.NullDecimal
	if r.API != nil {
		apiPaid = r.API.PaidAmount
	}
	if r.Geral != nil {
		geralPaid = r.Geral.PaidAmount
	}

	return []string{
		r.NossoNumero,
		string(r.Status),
		r.PayerName(),
		domain.FormatDate(r.MainDate()),
		domain.FormatDate(r.CreditDate()),
		money(apiPaid),
		money(geralPaid),
		strings.Join(r.Discrepancies, " | "),
	}
}

func money(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}

	return v.Decimal.StringFixed(2)
}
