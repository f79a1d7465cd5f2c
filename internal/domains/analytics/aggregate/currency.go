package aggregate

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount as Indian-grouped rupees with no decimal
// places, matching the dashboard's card and axis labels.
func FormatINR(amount float64) string {
	rounded := math.Round(amount)
	formatted := inrPrinter.Sprintf("%v%v",
		currency.Symbol(currency.INR),
		number.Decimal(rounded, number.MaxFractionDigits(0)),
	)
	return strings.ReplaceAll(formatted, " ", " ")
}
