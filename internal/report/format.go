package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"finanspano/internal/core"
)

// printer formats numbers with Turkish conventions: dot grouping, comma
// decimals.
var printer = message.NewPrinter(language.Turkish)

// FormatTRY renders an amount for display surfaces, e.g. ₺1.234,56.
// The CSV export deliberately does not use this; its amount column is the
// plain two-decimal form from Money.Decimal.
func FormatTRY(m core.Money) string {
	return printer.Sprintf("₺%.2f", m.Lira())
}
