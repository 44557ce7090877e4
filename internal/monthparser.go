package internal

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MonthParser builds the MonthlyTable for one export file. Use a new parser per file.
type MonthParser struct {
	month  MonthKey
	strict bool
	log    zerolog.Logger

	section string // current section header, empty until the first header
}

// MonthParserOption configures a MonthParser
type MonthParserOption func(*MonthParser)

// WithStrictCoverage additionally requires the declared range to run from the first to the last day of the month.
func WithStrictCoverage(strict bool) MonthParserOption {
	return func(p *MonthParser) {
		p.strict = strict
	}
}

// WithParserLogger sets the logger used for row-level diagnostics.
func WithParserLogger(log zerolog.Logger) MonthParserOption {
	return func(p *MonthParser) {
		p.log = log
	}
}

func NewMonthParser(month MonthKey, opts ...MonthParserOption) *MonthParser {
	p := &MonthParser{
		month: month,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse validates the marker row and collects the category amounts of the remaining rows.
// It returns a *DateRangeError or *IncompleteMonthError if the file must not be merged.
func (p *MonthParser) Parse(records []RawRecord) (*MonthlyTable, error) {
	if len(records) == 0 {
		return nil, &DateRangeError{Reason: "file has no marker row"}
	}

	dateRange, err := ParseDateRange(records[0].Value)
	if err != nil {
		return nil, err
	}
	if !dateRange.Covers(p.month) || (p.strict && !dateRange.CoversFully(p.month)) {
		return nil, &IncompleteMonthError{Month: p.month, Range: dateRange}
	}
	if !dateRange.SameYear(p.month) {
		p.log.Warn().
			Str("month", p.month.String()).
			Str("start", dateRange.Start.Format("2006-01-02")).
			Str("end", dateRange.End.Format("2006-01-02")).
			Msg("declared range is in a different year")
	}

	table := &MonthlyTable{
		Month:   p.month,
		Range:   dateRange,
		Amounts: make(map[CategoryPath]decimal.Decimal),
	}

	for _, rec := range records[1:] {
		row, err := Classify(rec)
		if err != nil {
			p.log.Debug().Int("line", rec.Line).Err(err).Msg("dropping row")
			table.Dropped = append(table.Dropped, RowError{Line: rec.Line, Err: err})
			continue
		}

		switch row.Kind {
		case RowSection:
			p.section = row.Name
		case RowLeaf:
			table.Amounts[JoinPath(p.section, row.Name)] = row.Amount
			if table.Currency == "" {
				table.Currency = strings.TrimSpace(rec.Currency)
			}
		}
	}

	return table, nil
}
