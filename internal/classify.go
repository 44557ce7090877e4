package internal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RowKind is the meaning of a classified record
type RowKind int

const (
	RowBlank RowKind = iota
	RowSection
	RowLeaf
)

func (k RowKind) String() string {
	switch k {
	case RowSection:
		return "section"
	case RowLeaf:
		return "leaf"
	default:
		return "blank"
	}
}

// Row is a classified record.
type Row struct {
	Kind   RowKind
	Name   string
	Amount decimal.Decimal // only set for RowLeaf
}

// Classify turns one record into a section header, a leaf entry or a blank row.
// A leaf whose amount does not parse yields a blank row and an error wrapping ErrParseFailure.
func Classify(rec RawRecord) (Row, error) {
	label := strings.TrimSpace(rec.Label)
	value := strings.TrimSpace(rec.Value)

	switch {
	case label != "" && value == "":
		return Row{Kind: RowSection, Name: label}, nil
	case label != "" && value != "":
		amount, err := ParseAmount(value)
		if err != nil {
			return Row{Kind: RowBlank}, err
		}
		return Row{Kind: RowLeaf, Name: label, Amount: amount}, nil
	default:
		// value without a label carries nothing we can attribute
		return Row{Kind: RowBlank}, nil
	}
}

// ParseAmount parses an amount written with either a decimal comma or a decimal point.
// A blank value is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &AmountError{Value: s, Err: err}
	}
	return amount, nil
}
