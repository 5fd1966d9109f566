package tabular

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tally/internal/core"
)

const sheetName = "Expenses"

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, core.NewValidationError("file", fmt.Sprintf("unreadable spreadsheet: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewValidationError("file", "spreadsheet has no sheets")
	}
	// Raw values keep date cells as serial numbers instead of their display text.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, core.NewValidationError("file", fmt.Sprintf("read sheet %q: %v", sheets[0], err))
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	convertDateSerials(rows, date1904)
	return rows, nil
}

// convertDateSerials rewrites numeric cells of the date column as
// YYYY-MM-DD. Anything else is left for Parse to accept or reject.
func convertDateSerials(rows [][]string, date1904 bool) {
	if len(rows) == 0 {
		return
	}
	col := -1
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), ColDate) {
			col = i
			break
		}
	}
	if col < 0 {
		return
	}

	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if _, err := core.ParseDate(v); err == nil {
			continue
		}
		serial, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			continue
		}
		row[col] = t.Format(core.DateLayout)
	}
}

func writeXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DFE6E9"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	// Built-in number format 2 is "0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("create amount style: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		line := i + 2
		values := []any{r.Description, nil, r.Date.String(), r.Category, r.Subcategory, r.Notes}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", line), &values); err != nil {
			return fmt.Errorf("write row %d: %w", line, err)
		}
		amountCell := fmt.Sprintf("B%d", line)
		if err := f.SetCellFloat(sheetName, amountCell, r.Amount.Major(), 2, 64); err != nil {
			return fmt.Errorf("write amount %d: %w", line, err)
		}
		if err := f.SetCellStyle(sheetName, amountCell, amountCell, amountStyle); err != nil {
			return fmt.Errorf("style amount %d: %w", line, err)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 32)
	f.SetColWidth(sheetName, "B", "C", 12)
	f.SetColWidth(sheetName, "D", "E", 20)
	f.SetColWidth(sheetName, "F", "F", 32)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
