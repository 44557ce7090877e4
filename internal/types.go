package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one line of a monthly export: category label, amount and currency.
// An empty or blank field counts as absent.
type RawRecord struct {
	Label    string
	Value    string
	Currency string
	Line     int // 1-based line (csv) or row (xlsx) in the source file
}

// CategoryPath is a flattened category key, either "Parent - Child" or a bare name.
type CategoryPath string

// PathSeparator joins a section name and an entry name into a CategoryPath.
const PathSeparator = " - "

// JoinPath builds the CategoryPath for an entry below the given section.
// An empty section yields the bare entry name.
func JoinPath(section, name string) CategoryPath {
	if section == "" {
		return CategoryPath(name)
	}
	return CategoryPath(section + PathSeparator + name)
}

type DateRange struct {
	Start time.Time
	End   time.Time
}

// MonthlyTable holds the amounts parsed from one monthly export.
type MonthlyTable struct {
	Month    MonthKey
	Range    DateRange
	Currency string // first currency seen on a leaf entry, empty if none
	Amounts  map[CategoryPath]decimal.Decimal
	Dropped  []RowError // rows skipped because their amount did not parse
}

// RowError describes a single row that was dropped while parsing a file.
type RowError struct {
	Line int
	Err  error
}

// Len returns the number of categories in the table.
func (t *MonthlyTable) Len() int {
	return len(t.Amounts)
}
