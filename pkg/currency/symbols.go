package currency

import "strings"

const (
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	JPY = "JPY"
	INR = "INR"
	CNY = "CNY"
	AUD = "AUD"
	CAD = "CAD"
)

var symbols = map[string]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	JPY: "¥",
	INR: "₹",
	CNY: "¥",
	AUD: "A$",
	CAD: "C$",
}

// Symbol returns the display symbol for code. Unknown codes are returned
// as given so the caller always has something to print.
func Symbol(code string) string {
	if s, ok := symbols[strings.ToUpper(code)]; ok {
		return s
	}
	return code
}

func IsKnown(code string) bool {
	_, ok := symbols[strings.ToUpper(code)]
	return ok
}
