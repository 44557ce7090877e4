package internal

import (
	"strings"
	"time"
)

// rangeSeparator splits the start and end date of a marker row.
const rangeSeparator = "bis"

// dayLayout accepts one or two digit days and months, e.g. 1.3.2023 and 01.03.2023.
const dayLayout = "2.1.2006"

// ParseDateRange parses a marker value of the form "<D>.<M>.<Y> bis <D>.<M>.<Y>".
func ParseDateRange(value string) (DateRange, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DateRange{}, &DateRangeError{Reason: "marker value is empty"}
	}

	parts := strings.Fields(value)
	if len(parts) != 3 || parts[1] != rangeSeparator {
		return DateRange{}, &DateRangeError{Value: value, Reason: "expected two dates separated by \"bis\""}
	}

	start, err := time.Parse(dayLayout, parts[0])
	if err != nil {
		return DateRange{}, &DateRangeError{Value: value, Reason: "invalid start date"}
	}
	end, err := time.Parse(dayLayout, parts[2])
	if err != nil {
		return DateRange{}, &DateRangeError{Value: value, Reason: "invalid end date"}
	}
	if end.Before(start) {
		return DateRange{}, &DateRangeError{Value: value, Reason: "end date is before start date"}
	}

	return DateRange{Start: start, End: end}, nil
}

// Covers reports whether both ends of the range fall in the given calendar month.
// The year is not compared.
func (r DateRange) Covers(m MonthKey) bool {
	return r.Start.Month() == m.Month && r.End.Month() == m.Month
}

// CoversFully reports whether the range spans exactly the whole month, first to last day.
func (r DateRange) CoversFully(m MonthKey) bool {
	return r.Start.Equal(m.First()) && r.End.Equal(m.Last())
}

// SameYear reports whether both ends of the range fall in the month's year.
func (r DateRange) SameYear(m MonthKey) bool {
	return r.Start.Year() == m.Year && r.End.Year() == m.Year
}
