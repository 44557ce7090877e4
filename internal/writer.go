package internal

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// CategoryHeader is the header of the first output column
const CategoryHeader = "Category"

// WriteOptions controls table serialization
type WriteOptions struct {
	Delimiter    rune
	DecimalComma bool
}

// OutputFileName returns the default output file name for a year and format.
func OutputFileName(year int, format string) string {
	return fmt.Sprintf("combined_spending_%d.%s", year, format)
}

// Header returns the column headers: Category followed by the twelve months.
func (t *CombinedTable) Header() []string {
	header := make([]string, 0, len(t.Months)+1)
	header = append(header, CategoryHeader)
	for _, m := range t.Months {
		header = append(header, m.String())
	}
	return header
}

// FormatAmount renders an amount for delimited output.
func FormatAmount(amount decimal.Decimal, decimalComma bool) string {
	s := amount.String()
	if decimalComma {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

// WriteCSV writes the table as delimited text with a header row.
func WriteCSV(w io.Writer, t *CombinedTable, opts WriteOptions) error {
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	} else {
		cw.Comma = ';'
	}

	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(t.Months)+1)
	for _, row := range t.Rows() {
		record[0] = string(row.Category)
		for i, amount := range row.Amounts {
			record[i+1] = FormatAmount(amount, opts.DecimalComma)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %q: %w", row.Category, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSONTable is the JSON output format of a combined table
type JSONTable struct {
	Year     int       `json:"year"`
	Months   []string  `json:"months"`
	Currency string    `json:"currency,omitempty"`
	Rows     []JSONRow `json:"rows"`
}

type JSONRow struct {
	Category string            `json:"category"`
	Amounts  []decimal.Decimal `json:"amounts"`
}

// WriteJSON writes the table as indented JSON.
func WriteJSON(w io.Writer, t *CombinedTable) error {
	out := JSONTable{
		Year:     t.Year,
		Months:   t.Header()[1:],
		Currency: t.Currency,
		Rows:     []JSONRow{},
	}
	for _, row := range t.Rows() {
		amounts := make([]decimal.Decimal, len(row.Amounts))
		copy(amounts, row.Amounts[:])
		out.Rows = append(out.Rows, JSONRow{Category: string(row.Category), Amounts: amounts})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteXLSX writes the table to an Excel workbook with numeric amount cells.
func WriteXLSX(path string, t *CombinedTable) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Spending %d", t.Year)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}

	header := t.Header()
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for r, row := range t.Rows() {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		f.SetCellValue(sheet, cell, string(row.Category))
		for i, amount := range row.Amounts {
			cell, _ := excelize.CoordinatesToCellName(i+2, r+2)
			f.SetCellValue(sheet, cell, amount.InexactFloat64())
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

// WriteFile writes the table to path in the given format (csv, json or xlsx).
func WriteFile(path, format string, t *CombinedTable, opts WriteOptions) error {
	switch format {
	case "csv", "json", "xlsx":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if format == "xlsx" {
		return WriteXLSX(path, t)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer f.Close()

	if format == "json" {
		err = WriteJSON(f, t)
	} else {
		err = WriteCSV(f, t, opts)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
