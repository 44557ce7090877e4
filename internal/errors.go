package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrParseFailure is returned when a row's amount is not a number
	ErrParseFailure = errors.New("amount is not a number")

	// ErrDateRange is returned when the date-range marker row is missing or malformed
	ErrDateRange = errors.New("invalid date range")

	// ErrIncompleteMonth is returned when a file does not cover its target month
	ErrIncompleteMonth = errors.New("file does not cover the month")

	// ErrMissingFile is returned by a Source when no export exists for a month
	ErrMissingFile = errors.New("no export for month")
)

// AmountError is a ParseFailure for a single row.
type AmountError struct {
	Value string
	Err   error
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("%v: %q", ErrParseFailure, e.Value)
}

func (e *AmountError) Unwrap() []error {
	return []error{ErrParseFailure, e.Err}
}

// DateRangeError rejects a whole file because its marker row could not be read.
type DateRangeError struct {
	Value  string
	Reason string
}

func (e *DateRangeError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %s", ErrDateRange, e.Reason)
	}
	return fmt.Sprintf("%v %q: %s", ErrDateRange, e.Value, e.Reason)
}

func (e *DateRangeError) Unwrap() error {
	return ErrDateRange
}

// IncompleteMonthError rejects a whole file whose declared range does not match its month.
type IncompleteMonthError struct {
	Month MonthKey
	Range DateRange
}

func (e *IncompleteMonthError) Error() string {
	return fmt.Sprintf("%v %s: declared range is %s to %s", ErrIncompleteMonth, e.Month,
		e.Range.Start.Format("2006-01-02"), e.Range.End.Format("2006-01-02"))
}

func (e *IncompleteMonthError) Unwrap() error {
	return ErrIncompleteMonth
}

// IsFileRejection reports whether err rejects a whole file rather than a row.
func IsFileRejection(err error) bool {
	return errors.Is(err, ErrDateRange) || errors.Is(err, ErrIncompleteMonth)
}
