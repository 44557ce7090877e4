package internal

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats amounts for display in a currency's home locale
type Currency struct {
	Code     string // "EUR", "CHF", "SEK"
	unit     currency.Unit
	symbol   string
	fraction int
	printer  *message.Printer
	prefix   bool
}

// symbolCodes maps symbols found in exports to ISO codes
var symbolCodes = map[string]string{
	"€": "EUR",
	"$": "USD",
	"£": "GBP",
	"¥": "JPY",
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"CHF": "CHF",
}

// defaultLocaleForCurrency picks the number format used for each currency.
var defaultLocaleForCurrency = map[string]language.Tag{
	"EUR": language.German,
	"CHF": language.MustParse("de-CH"),
	"USD": language.AmericanEnglish,
	"GBP": language.BritishEnglish,
	"SEK": language.Swedish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"JPY": language.Japanese,
	"PLN": language.Polish,
	"CZK": language.Czech,
}

// GetCurrency returns the Currency for a code or symbol. Unknown codes format with
// two fraction digits and the code as symbol; an empty code formats plain numbers.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if iso, ok := symbolCodes[code]; ok {
		code = iso
	}

	tag, ok := defaultLocaleForCurrency[code]
	if !ok {
		tag = language.German
	}

	c := Currency{
		Code:     code,
		fraction: 2,
		printer:  message.NewPrinter(tag),
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		c.symbol = code
		return c
	}
	c.unit = unit
	c.prefix = isPrefix(code)

	if m := money.GetCurrency(code); m != nil {
		c.fraction = m.Fraction
	}
	if sym, ok := symbolOverrides[code]; ok {
		c.symbol = sym
	} else {
		c.symbol = c.printer.Sprint(currency.NarrowSymbol(unit))
	}
	return c
}

// isPrefix returns true if the currency symbol goes before the amount.
// x/text does not expose CLDR symbol placement, so this list is maintained by hand.
func isPrefix(code string) bool {
	switch code {
	case "USD", "GBP", "JPY":
		return true
	default:
		return false
	}
}

// Number formats an amount without a symbol.
func (c Currency) Number(amount decimal.Decimal) string {
	return c.printer.Sprint(number.Decimal(amount.InexactFloat64(),
		number.MinFractionDigits(c.fraction), number.MaxFractionDigits(c.fraction)))
}

// Format formats an amount with the currency symbol
func (c Currency) Format(amount decimal.Decimal) string {
	formatted := c.Number(amount)
	switch {
	case c.symbol == "":
		return formatted
	case c.prefix:
		return c.symbol + formatted
	default:
		return formatted + " " + c.symbol
	}
}
