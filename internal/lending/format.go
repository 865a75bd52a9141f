// internal/lending/format.go
package lending

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders a rupee amount with Indian digit grouping, e.g. ₹10,00,000.
func FormatINR(amount int64) string {
	return inr.Sprintf("₹%d", amount)
}

// FormatNumber groups digits the same way without the symbol.
func FormatNumber(n int64) string {
	return inr.Sprintf("%d", n)
}
