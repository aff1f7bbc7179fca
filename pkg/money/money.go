// Package money converts between the integer cents stored in the database and
// the decimal amounts exchanged with clients.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the currency code shown on receipts and reports.
const DefaultCurrency = "SLE"

// FromDecimal converts a decimal amount to cents, rounding half away from zero.
func FromDecimal(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

// ToDecimal converts cents to a decimal amount.
func ToDecimal(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// Formatter renders cents as a grouped currency string, e.g. "SLE 1,234.50".
type Formatter struct {
	currency string
	printer  *message.Printer
}

// NewFormatter creates a formatter for the given currency code.
func NewFormatter(currency string) *Formatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Formatter{
		currency: currency,
		printer:  message.NewPrinter(language.English),
	}
}

// Format renders the amount with thousands separators and two decimals.
func (f *Formatter) Format(cents int64) string {
	return f.printer.Sprintf("%s %.2f", f.currency, ToDecimal(cents))
}

// Currency returns the configured currency code.
func (f *Formatter) Currency() string {
	return f.currency
}
