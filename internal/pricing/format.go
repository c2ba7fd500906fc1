package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unlimited is shown instead of a number for free models and uncapped allowances.
const Unlimited = "Unlimited"

var groupSep, decimalSep = separators(message.NewPrinter(language.English))

// separators reads the locale's grouping and decimal symbols off a sample number.
func separators(p *message.Printer) (string, string) {
	s := p.Sprintf("%.1f", 1000.5)
	i := strings.Index(s, "000")
	return s[1:i], s[i+3 : len(s)-1]
}

// FormatAmount renders money with thousands separators and two decimals, e.g. 1,234.50.
func FormatAmount(d decimal.Decimal) string {
	return groupDigits(d.StringFixed(2))
}

// FormatUnits renders a usage quantity without trailing zeros, e.g. 1,200 or 3.3.
func FormatUnits(d decimal.Decimal) string {
	return groupDigits(d.Round(2).String())
}

// groupDigits inserts separators into a plain decimal string. It never goes
// through a fixed-width number, so arbitrarily large values stay exact.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(groupSep)
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteString(decimalSep)
		b.WriteString(frac)
	}
	return b.String()
}
