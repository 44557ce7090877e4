package internal

import (
	"fmt"
	"time"
)

// MonthKey is a month in a specific year.
type MonthKey struct {
	Year  int
	Month time.Month
}

// NewMonthKey returns a new MonthKey.
func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey{Year: year, Month: month}
}

// ParseMonthKey parses a "YYYY-MM" string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("parsing month %q: %w", s, err)
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

// MonthsOf returns the twelve months of a year in chronological order.
func MonthsOf(year int) [12]MonthKey {
	var months [12]MonthKey
	for i := range months {
		months[i] = MonthKey{Year: year, Month: time.Month(i + 1)}
	}
	return months
}

// String returns the month formatted as YYYY-MM.
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Index returns the zero-based position of the month within its year.
func (m MonthKey) Index() int {
	return int(m.Month) - 1
}

// First returns the first day of the month.
func (m MonthKey) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last day of the month.
func (m MonthKey) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Valid reports whether the month number is within 1-12.
func (m MonthKey) Valid() bool {
	return m.Month >= time.January && m.Month <= time.December
}
