package tabular

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tally/internal/core"
)

func sampleRows() []Row {
	return []Row{
		{Description: "Coffee, large", Amount: core.Money{Cents: 450}, Date: core.NewDate(2026, 3, 2), Category: "Food", Subcategory: "Cafe", Notes: "with \"oat\" milk"},
		{Description: "Bus", Amount: core.Money{Cents: 200}, Date: core.NewDate(2026, 3, 3), Category: "Transport"},
	}
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"expenses.csv", CSV, false},
		{"EXPORT.CSV", CSV, false},
		{"book.xlsx", XLSX, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromFilename(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, core.IsValidation(err))
				assert.Contains(t, err.Error(), "unsupported file format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromFilename_LegacyXLS(t *testing.T) {
	_, err := FormatFromFilename("legacy.xls")
	require.Error(t, err)
	assert.True(t, core.IsValidation(err))
	assert.Contains(t, err.Error(), ".xlsx or .csv")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, XLSX, f)
	assert.Equal(t, ".xlsx", f.Extension())

	_, err = ParseFormat("pdf")
	assert.True(t, core.IsValidation(err))
}

func TestParse(t *testing.T) {
	t.Run("header is case-insensitive and optional columns may be absent", func(t *testing.T) {
		rows, err := Parse([][]string{
			{" Date ", "Description", "AMOUNT", "Category"},
			{"2026-01-05", "Lunch", "12.5", "Food"},
			{"", "", "", ""},
			{"2026-01-06", "Train", "3", "Transport"},
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(1250), rows[0].Amount.Cents)
		assert.Equal(t, "2026-01-05", rows[0].Date.String())
		assert.Equal(t, "", rows[0].Subcategory)
		assert.Equal(t, 4, rows[1].Line)
	})

	t.Run("missing required column fails before rows are read", func(t *testing.T) {
		_, err := Parse([][]string{
			{"description", "amount", "date"},
			{"Lunch", "not-a-number", "bad"},
		})
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
		assert.Contains(t, err.Error(), "missing required columns: category")
	})

	t.Run("bad row names its line", func(t *testing.T) {
		_, err := Parse([][]string{
			{"description", "amount", "date", "category"},
			{"Lunch", "12", "2026-01-05", "Food"},
			{"Dinner", "12", "05/01/2026", "Food"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 3")
		assert.Contains(t, err.Error(), "invalid date")
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := Parse([][]string{
			{"description", "amount", "date", "category"},
			{"Refund", "-4", "2026-01-05", "Food"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid amount")
	})

	t.Run("byte order mark on the first header is ignored", func(t *testing.T) {
		rows, err := Parse([][]string{
			{"\ufeffdescription", "amount", "date", "category"},
			{"Lunch", "12", "2026-01-05", "Food"},
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Lunch", rows[0].Description)
	})

	t.Run("non-ASCII digits in the amount are rejected", func(t *testing.T) {
		_, err := Parse([][]string{
			{"description", "amount", "date", "category"},
			{"Lunch", "1.\u0663", "2026-01-05", "Food"},
		})
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
		assert.Contains(t, err.Error(), "invalid amount")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Parse(nil)
		assert.True(t, core.IsValidation(err))
	})
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, sampleRows()))

	firstLine, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, "description,amount,date,category,subcategory,notes", firstLine)
	assert.Contains(t, buf.String(), "\"Coffee, large\",4.50,2026-03-02")

	rows, err := Read(&buf, CSV)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for i, want := range sampleRows() {
		got := rows[i]
		assert.Equal(t, want.Description, got.Description)
		assert.Equal(t, want.Amount, got.Amount)
		assert.Equal(t, want.Date.String(), got.Date.String())
		assert.Equal(t, want.Category, got.Category)
		assert.Equal(t, want.Subcategory, got.Subcategory)
		assert.Equal(t, want.Notes, got.Notes)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, XLSX, sampleRows()))
	require.NotZero(t, buf.Len())

	rows, err := Read(bytes.NewReader(buf.Bytes()), XLSX)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Coffee, large", rows[0].Description)
	assert.Equal(t, int64(450), rows[0].Amount.Cents)
	assert.Equal(t, "Cafe", rows[0].Subcategory)
	assert.Equal(t, "2026-03-03", rows[1].Date.String())
}

func TestXLSXDateCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Description", "Amount", "Date", "Category"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Rent", 12.5, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), "Home"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Gas", "40", "2026-03-18", "Car"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := Read(bytes.NewReader(buf.Bytes()), XLSX)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-17", rows[0].Date.String())
	assert.Equal(t, int64(1250), rows[0].Amount.Cents)
	assert.Equal(t, "2026-03-18", rows[1].Date.String())
	assert.Equal(t, int64(4000), rows[1].Amount.Cents)
}

func TestReadRejectsGarbageSpreadsheet(t *testing.T) {
	_, err := Read(strings.NewReader("not a zip"), XLSX)
	require.Error(t, err)
	assert.True(t, core.IsValidation(err))
}
