// Package format converts raw aggregation values into display-ready strings:
// currency amounts, percentages, calendar dates, and the sentinel defaults
// for optional fields. Formatting never fails; anything missing degrades to
// a sentinel instead of propagating.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display sentinels for optional fields, matching what the dashboard shows.
const (
	NoRUC         = "No disponible"
	NoDescription = "Sin descripción"
	NoDate        = "Fecha no disponible"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"PEN": "S/.",
}

var printer = message.NewPrinter(language.MustParse("es-PE"))

// Currency renders an amount with two fixed decimals, locale thousands
// separators, and the symbol mapped from the currency code. Unmapped codes
// fall back to the raw code string.
func Currency(amount float64, code string) string {
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code
	}
	return printer.Sprintf("%s %v", symbol, number.Decimal(amount, number.Scale(2)))
}

// Percent renders an already-rounded ratio with its unit.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio)
}

// Date renders a calendar date, or the sentinel when the timestamp is
// missing.
func Date(t *time.Time) string {
	if t == nil {
		return NoDate
	}
	return t.Format("02/01/2006")
}

// RUC substitutes the sentinel for a missing tax identifier.
func RUC(ruc string) string {
	if ruc == "" {
		return NoRUC
	}
	return ruc
}

// Description substitutes the sentinel for a missing contract description.
func Description(desc string) string {
	if desc == "" {
		return NoDescription
	}
	return desc
}
