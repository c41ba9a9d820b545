package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/iho/cnabrecon/internal/domain"
)

// Sheet names of the comparison workbook, in workbook order.
const (
	SheetDivergent   = "Divergencias"
	SheetOnlyAPI     = "Sobra_API"
	SheetOnlyGeral   = "Sobra_Geral"
	SheetConciliated = "Correspondentes"
)

var sheetOrder = []struct {
	name   string
	status domain.ComparisonStatus
}{
	{SheetDivergent, domain.ComparisonDivergent},
	{SheetOnlyAPI, domain.ComparisonOnlyAPI},
	{SheetOnlyGeral, domain.ComparisonOnlyGeral},
	{SheetConciliated, domain.ComparisonConciliated},
}

// ComparisonWorkbook renders comparison results as an XLSX workbook with one
// sheet per comparison class. Rows keep the order of results.
func ComparisonWorkbook(results []*domain.ComparisonResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	byStatus := make(map[domain.ComparisonStatus][]*domain.ComparisonResult)
	for _, r := range results {
		byStatus[r.Status] = append(byStatus[r.Status], r)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheetOrder {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}

		if err := writeSheet(f, sheet.name, style, byStatus[sheet.status]); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, style int, rows []*domain.ComparisonResult) error {
	for i, name := range comparisonHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(comparisonHeader), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	widths := make([]int, len(comparisonHeader))
	for i, name := range comparisonHeader {
		widths[i] = len(name)
	}

	for rowIdx, r := range rows {
		for colIdx, value := range comparisonRow(r) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
			if len(value) > widths[colIdx] {
				widths[colIdx] = len(value)
			}
		}
	}

	// Auto-fit column widths (approximate)
	for i, w := range widths {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(w + 4)
		if width < 12 {
			width = 12
		}
		if width > 80 {
			width = 80
		}
		_ = f.SetColWidth(sheet, colName, colName, width)
	}

	return nil
}
