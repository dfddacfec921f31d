// Package pricing computes cart totals, renders KES amounts and estimates
// delivery dates from fabric choice.
package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol is the en-KE symbol for Kenyan shillings.
const CurrencySymbol = "Ksh"

// Line is anything that can be priced as price times quantity.
type Line interface {
	LinePrice() int64
	LineQuantity() int
}

// LineTotal returns price × quantity in whole shillings.
func LineTotal(l Line) int64 {
	return l.LinePrice() * int64(l.LineQuantity())
}

// CartTotal sums the line totals; an empty cart totals 0.
func CartTotal[L Line](lines []L) int64 {
	var total int64
	for _, l := range lines {
		total += LineTotal(l)
	}
	return total
}

var printer = message.NewPrinter(language.English)

// FormatCurrency renders whole shillings with thousands grouping and no
// fraction digits, e.g. "Ksh 24,000".
func FormatCurrency(amount int64) string {
	if amount < 0 {
		return "-" + CurrencySymbol + " " + printer.Sprintf("%d", -amount)
	}
	return CurrencySymbol + " " + printer.Sprintf("%d", amount)
}
