package cart

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ParsePrice extracts a non-negative decimal from display text such as
// "₽199.99" or "1 299,00 ₽" (commas are treated as thousands separators and
// dropped). Everything other than digits, '.', and '-' is stripped before
// parsing. Malformed or negative input yields 0 — the page never surfaces a
// price error to the user, it just treats the product as free. Callers that
// care about the distinction should validate the text up front.
func ParsePrice(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price for display with grouped digits and exactly
// two fraction digits, prefixed with the shop's currency symbol.
func FormatPrice(v float64, symbol string) string {
	return symbol + pricePrinter.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
