// Package money formats amounts for display.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formats amounts in a currency for a locale.
type Formatter struct {
	Tag  language.Tag
	Unit currency.Unit
}

// NewFormatter returns a formatter for the BCP 47 locale and the
// ISO 4217 currency code.
func NewFormatter(locale, code string) (Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	return Formatter{Tag: tag, Unit: unit}, nil
}

// Format returns the amount with the currency symbol, rounded to the
// number of decimals commonly used for the currency.
func (f Formatter) Format(amount decimal.Decimal) string {
	p := message.NewPrinter(f.Tag)
	return p.Sprint(currency.Symbol(f.Unit.Amount(amount.InexactFloat64())))
}

// Signed returns the formatted absolute amount prefixed with "-" if
// negative is set, "+" otherwise.
func (f Formatter) Signed(amount decimal.Decimal, negative bool) string {
	sign := "+"
	if negative {
		sign = "-"
	}

	return sign + f.Format(amount.Abs())
}
