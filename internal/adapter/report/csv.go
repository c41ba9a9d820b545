package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/iho/cnabrecon/internal/domain"
)

var periodHeader = []string{
	"Origem",
	"Nosso Numero",
	"Pagador",
	"Data Ocorrencia",
	"Data Credito",
	"Diferenca (Dias)",
	"Valor Pago",
}

// ComparisonCSV renders comparison results as a semicolon separated file.
func ComparisonCSV(results []*domain.ComparisonResult) ([]byte, error) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, comparisonRow(r))
	}

	return writeCSV(comparisonHeader, rows)
}

// PeriodCSV renders a period listing with the lag in days between occurrence
// and credit. The lag is 0 when either date is missing.
func PeriodCSV(items []*domain.Transaction) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, t := range items {
		lag, _ := t.LagDays()
		rows = append(rows, []string{
			string(t.Origin),
			t.NossoNumero,
			t.PayerName,
			domain.FormatDate(t.OccurrenceDate),
			domain.FormatDate(t.CreditDate),
			strconv.Itoa(lag),
			money(t.PaidAmount),
		})
	}

	return writeCSV(periodHeader, rows)
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
