package amount

import (
	"strings"

	"wallet_client/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const probeValue = 1234567

// Formatter renders whole-unit amounts with locale digit grouping.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter falls back to English grouping when the locale is unknown or
// renders digits outside 0-9.
func NewFormatter(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	if DigitsOnly(p.Sprintf("%d", probeValue)) != "1234567" {
		p = message.NewPrinter(language.English)
	}
	return &Formatter{printer: p, currency: currency}
}

// Group renders v with thousands separators, e.g. 50000 -> "50,000".
func (f *Formatter) Group(v int64) string {
	return f.printer.Sprintf("%d", v)
}

// Signed renders the absolute value of a prefixed with sign.
func (f *Formatter) Signed(a models.Amount, sign string) string {
	v := a.Int64()
	if v < 0 {
		v = -v
	}
	return sign + f.Group(v)
}

// Money renders a with the currency prefix, e.g. "Rp50,000".
func (f *Formatter) Money(a models.Amount) string {
	return f.currency + f.Group(a.Int64())
}

// DigitsOnly drops every byte that is not an ASCII digit.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
