// Package tabular reads and writes expense rows as CSV or XLSX.
package tabular

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"tally/internal/core"
)

// Format is a supported tabular file format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// Column names, in export order.
const (
	ColDescription = "description"
	ColAmount      = "amount"
	ColDate        = "date"
	ColCategory    = "category"
	ColSubcategory = "subcategory"
	ColNotes       = "notes"
)

// Header is the column order written by Write.
var Header = []string{ColDescription, ColAmount, ColDate, ColCategory, ColSubcategory, ColNotes}

var requiredColumns = []string{ColDescription, ColAmount, ColDate, ColCategory}

// Row is one parsed expense line. Line is the 1-based line in the source
// file, header included.
type Row struct {
	Line        int
	Description string
	Amount      core.Money
	Date        core.Date
	Category    string
	Subcategory string
	Notes       string
}

// FormatFromFilename picks the import format from the file extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return CSV, nil
	case ".xlsx":
		return XLSX, nil
	case ".xls":
		return "", core.NewValidationError("file", "legacy .xls files are not supported, save the sheet as .xlsx or .csv")
	default:
		return "", core.NewValidationError("file", "unsupported file format")
	}
}

// ParseFormat resolves an export format name. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return CSV, nil
	case "xlsx", "excel":
		return XLSX, nil
	default:
		return "", core.NewValidationError("format", "unsupported export format")
	}
}

func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Extension() string {
	return "." + string(f)
}

// Read decodes every row of r. The header is checked before any data row.
func Read(r io.Reader, f Format) ([]Row, error) {
	var records [][]string
	var err error
	switch f {
	case CSV:
		records, err = readCSV(r)
	case XLSX:
		records, err = readXLSX(r)
	default:
		return nil, core.NewValidationError("file", "unsupported file format")
	}
	if err != nil {
		return nil, err
	}
	return Parse(records)
}

// Write encodes rows with Header as the first line.
func Write(w io.Writer, f Format, rows []Row) error {
	switch f {
	case CSV:
		return writeCSV(w, rows)
	case XLSX:
		return writeXLSX(w, rows)
	default:
		return core.NewValidationError("format", "unsupported export format")
	}
}

// Parse converts raw records, the first being the header, into Rows.
// Header names match case-insensitively. Blank lines are skipped.
func Parse(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, core.NewValidationError("file", "file is empty")
	}

	index := make(map[string]int)
	for i, name := range records[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, core.NewValidationError("file", "missing required columns: "+strings.Join(missing, ", "))
	}

	cell := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]Row, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2
		if isBlank(rec) {
			continue
		}
		row, err := parseRow(line, rec, cell)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(line int, rec []string, cell func([]string, string) string) (Row, error) {
	rowErr := func(msg string) error {
		return core.NewValidationError("file", fmt.Sprintf("row %d: %s", line, msg))
	}

	row := Row{
		Line:        line,
		Description: cell(rec, ColDescription),
		Category:    cell(rec, ColCategory),
		Subcategory: cell(rec, ColSubcategory),
		Notes:       cell(rec, ColNotes),
	}
	if row.Description == "" {
		return Row{}, rowErr("description is required")
	}
	if len(row.Description) > core.MaxDescriptionLen {
		return Row{}, rowErr("description too long")
	}
	if row.Category == "" {
		return Row{}, rowErr("category is required")
	}

	cents, err := core.ParseDecimalToCents(cell(rec, ColAmount))
	if err != nil {
		return Row{}, rowErr(fmt.Sprintf("invalid amount %q", cell(rec, ColAmount)))
	}
	row.Amount = core.Money{Cents: cents}

	date, err := core.ParseDate(cell(rec, ColDate))
	if err != nil {
		return Row{}, rowErr(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", cell(rec, ColDate)))
	}
	row.Date = date
	return row, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// FromExpense builds an export row.
func FromExpense(e core.Expense) Row {
	return Row{
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		Category:    e.CategoryName,
		Subcategory: e.SubcategoryName,
		Notes:       e.Notes,
	}
}

func (r Row) record() []string {
	return []string{r.Description, r.Amount.String(), r.Date.String(), r.Category, r.Subcategory, r.Notes}
}
