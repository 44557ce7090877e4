package internal

import (
	"errors"

	"github.com/rs/zerolog"
)

// MonthStatus is the outcome of processing one month
type MonthStatus string

const (
	StatusParsed   MonthStatus = "parsed"
	StatusEmpty    MonthStatus = "empty"
	StatusMissing  MonthStatus = "missing"
	StatusRejected MonthStatus = "rejected"
)

// MonthResult describes what happened to one month of a run.
type MonthResult struct {
	Month      MonthKey
	Status     MonthStatus
	Path       string
	Categories int
	Dropped    []RowError
	Err        error // rejection reason, nil unless Status is StatusRejected
}

// RunReport lists the outcome of every month, January first.
type RunReport struct {
	Year   int
	Months [12]MonthResult
}

// Count returns the number of months with the given status.
func (r *RunReport) Count(status MonthStatus) int {
	n := 0
	for _, m := range r.Months {
		if m.Status == status {
			n++
		}
	}
	return n
}

// Combiner merges the monthly exports of a year into one CombinedTable.
type Combiner struct {
	source Source
	cfg    *Config
	log    zerolog.Logger
}

// CombinerOption configures a Combiner
type CombinerOption func(*Combiner)

// WithConfig applies groups, exclusions and coverage rules from cfg.
func WithConfig(cfg *Config) CombinerOption {
	return func(c *Combiner) {
		c.cfg = cfg
	}
}

// WithLogger sets the logger for progress and diagnostics.
func WithLogger(log zerolog.Logger) CombinerOption {
	return func(c *Combiner) {
		c.log = log
	}
}

func NewCombiner(source Source, opts ...CombinerOption) *Combiner {
	c := &Combiner{
		source: source,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Combine processes January to December of year in order. A month without a usable
// export becomes a zero column; no single month aborts the run.
func (c *Combiner) Combine(year int) (*CombinedTable, *RunReport) {
	table := NewCombinedTable(year)
	report := &RunReport{Year: year}

	for i, month := range table.Months {
		result := c.combineMonth(table, month)
		report.Months[i] = result
	}

	if table.Currency == "" && c.cfg != nil {
		table.Currency = c.cfg.Currency
	}
	return table, report
}

func (c *Combiner) combineMonth(table *CombinedTable, month MonthKey) MonthResult {
	log := c.log.With().Str("month", month.String()).Logger()
	result := MonthResult{Month: month}

	path, records, err := c.source.Records(month)
	result.Path = path
	if errors.Is(err, ErrMissingFile) {
		log.Info().Msg("file not found, zero-filling month")
		result.Status = StatusMissing
		return result
	}
	if err != nil {
		log.Warn().Str("file", path).Err(err).Msg("rejecting file")
		result.Status = StatusRejected
		result.Err = err
		return result
	}

	log.Info().Str("file", path).Msg("processing file")

	strict := c.cfg != nil && c.cfg.StrictCoverage
	parser := NewMonthParser(month, WithStrictCoverage(strict), WithParserLogger(log))
	monthly, err := parser.Parse(records)
	if err != nil {
		log.Warn().Str("file", path).Err(err).Msg("rejecting file")
		result.Status = StatusRejected
		result.Err = err
		return result
	}

	result.Dropped = monthly.Dropped
	merged := c.merge(table, monthly)
	result.Categories = merged
	if merged == 0 {
		result.Status = StatusEmpty
	} else {
		result.Status = StatusParsed
	}

	log.Debug().Int("categories", merged).Int("dropped", len(monthly.Dropped)).Msg("merged month")
	return result
}

// merge adds a month's amounts to the table and returns how many categories it contributed.
func (c *Combiner) merge(table *CombinedTable, monthly *MonthlyTable) int {
	merged := 0
	for category, amount := range monthly.Amounts {
		if c.cfg.ShouldExclude(category) {
			continue
		}
		table.Add(c.cfg.Resolve(category), monthly.Month, amount)
		merged++
	}
	if table.Currency == "" {
		table.Currency = monthly.Currency
	}
	return merged
}
