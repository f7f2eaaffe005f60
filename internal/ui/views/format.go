package views

import (
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormatter renders prices in a locale and currency.
type PriceFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewPriceFormatter falls back to en-US and USD when locale or code do
// not parse.
func NewPriceFormatter(locale, code string) *PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		unit = currency.USD
	}
	return &PriceFormatter{printer: message.NewPrinter(tag), unit: unit}
}

// Format renders v with the currency symbol.
func (f *PriceFormatter) Format(v float64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(v)))
}

// FormatRating renders a 0-5 rating as stars plus the number.
func FormatRating(r float64) string {
	if r <= 0 {
		return "unrated"
	}
	full := int(r + 0.5)
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full) + " " + strconv.FormatFloat(r, 'f', 1, 64)
}

// FormatBool renders the wireless flag.
func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
