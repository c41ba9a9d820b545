package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iho/cnabrecon/internal/domain"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func paid(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func sampleResults() []*domain.ComparisonResult {
	api := &domain.Transaction{
		Origin:         domain.OriginAPI,
		NossoNumero:    "001",
		PayerName:      "JOAO DA SILVA",
		OccurrenceDate: day(2024, 1, 1),
		CreditDate:     day(2024, 1, 3),
		PaidAmount:     paid("100"),
	}
	geral := &domain.Transaction{
		Origin:         domain.OriginGeral,
		NossoNumero:    "001",
		PayerName:      "JOAO DA SILVA",
		OccurrenceDate: day(2024, 1, 1),
		PaidAmount:     paid("100"),
	}
	lonely := &domain.Transaction{
		Origin:         domain.OriginAPI,
		NossoNumero:    "002",
		PayerName:      "MARIA; SOUZA",
		OccurrenceDate: day(2024, 1, 2),
		PaidAmount:     paid("50.5"),
	}

	return []*domain.ComparisonResult{
		{NossoNumero: "002", Status: domain.ComparisonOnlyAPI, API: lonely, Divergent: true, Discrepancies: []string{"missing in GERAL"}},
		{NossoNumero: "001", Status: domain.ComparisonConciliated, API: api, Geral: geral},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatXLSX, false},
		{"xlsx", FormatXLSX, false},
		{" CSV ", FormatCSV, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComparisonFileName(t *testing.T) {
	r := domain.DateRange{Start: *day(2024, 1, 1), End: *day(2024, 1, 31)}

	assert.Equal(t, "comparacao_20240101_20240131.csv", ComparisonFileName(FormatCSV, r))
	assert.Equal(t, "comparacao_20240101_20240131.xlsx", ComparisonFileName(FormatXLSX, r))
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
	assert.True(t, strings.HasPrefix(FormatCSV.ContentType(), "text/csv"))
}

func TestComparisonCSV(t *testing.T) {
	data, err := ComparisonCSV(sampleResults())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Nosso Numero;Status;Pagador;Data Ocorrencia;Data Credito;Valor API;Valor Geral;Divergencias", lines[0])
	assert.Equal(t, `002;SOMENTE_API;"MARIA; SOUZA";02/01/2024;;50.50;;missing in GERAL`, lines[1])
	assert.Equal(t, "001;CONCILIADO;JOAO DA SILVA;01/01/2024;03/01/2024;100.00;100.00;", lines[2])
}

func TestPeriodCSV(t *testing.T) {
	items := []*domain.Transaction{
		{
			Origin:         domain.OriginAPI,
			NossoNumero:    "001",
			PayerName:      "JOAO DA SILVA",
			OccurrenceDate: day(2024, 1, 30),
			CreditDate:     day(2024, 2, 2),
			PaidAmount:     paid("1234.5"),
		},
		{
			Origin:         domain.OriginGeral,
			NossoNumero:    "002",
			PayerName:      "MARIA",
			OccurrenceDate: day(2024, 1, 30),
		},
	}

	data, err := PeriodCSV(items)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Origem;Nosso Numero;Pagador;Data Ocorrencia;Data Credito;Diferenca (Dias);Valor Pago", lines[0])
	assert.Equal(t, "API;001;JOAO DA SILVA;30/01/2024;02/02/2024;3;1234.50", lines[1])
	assert.Equal(t, "GERAL;002;MARIA;30/01/2024;;0;", lines[2])
}

func TestPeriodCSVEmpty(t *testing.T) {
	data, err := PeriodCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "Origem;Nosso Numero;Pagador;Data Ocorrencia;Data Credito;Diferenca (Dias);Valor Pago\n", string(data))
}

func TestComparisonWorkbook(t *testing.T) {
	data, err := ComparisonWorkbook(sampleResults())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetDivergent, SheetOnlyAPI, SheetOnlyGeral, SheetConciliated}, f.GetSheetList())

	onlyAPI, err := f.GetRows(SheetOnlyAPI)
	require.NoError(t, err)
	require.Len(t, onlyAPI, 2)
	assert.Equal(t, "Nosso Numero", onlyAPI[0][0])
	assert.Equal(t, []string{"002", "SOMENTE_API", "MARIA; SOUZA", "02/01/2024", "", "50.50", "", "missing in GERAL"}, onlyAPI[1])

	matched, err := f.GetRows(SheetConciliated)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "001", matched[1][0])
	assert.Equal(t, "100.00", matched[1][6])

	divergent, err := f.GetRows(SheetDivergent)
	require.NoError(t, err)
	assert.Len(t, divergent, 1, "header only")
}
