package helpers

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ParseAmount parses user-entered money. Empty input is an error; callers
// decide whether the field is optional.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders whole currency units with thousands separators, e.g. "KSh 1,500".
func FormatMoney(currency string, amount decimal.Decimal) string {
	return printer.Sprintf("%s %d", currency, amount.Round(0).IntPart())
}
