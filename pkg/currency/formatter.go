package currency

import (
	"fmt"
	"math"
)

// Format renders amount with two decimals behind the symbol of code,
// e.g. Format(800, "GBP") == "£800.00".
func Format(amount float64, code string) string {
	return FormatWithSymbol(amount, Symbol(code))
}

func FormatWithSymbol(amount float64, symbol string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return symbol + "-"
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// FormatUSD always uses a literal "$" prefix regardless of the USD symbol entry.
func FormatUSD(amount float64) string {
	return FormatWithSymbol(amount, "$")
}
