package money

import "strings"

// DefaultLocale is the locale used by Format when given an empty locale.
const DefaultLocale = "fr-FR"

var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"CHF": "CHF",
}

// Format renders the amount as a locale-aware currency string.
// "fr-FR" produces "15,99 €" (comma decimals, symbol suffix); other locales
// fall back to the "€15.99" prefix style. Unknown currencies use their code
// in place of a symbol.
func (m Money) Format(locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	sym, ok := symbols[m.currency]
	if !ok {
		sym = m.currency
	}

	fixed := m.Decimal().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	if locale == DefaultLocale || strings.HasPrefix(locale, "fr") {
		// 1234.56 -> "1 234,56 €" with non-breaking spaces.
		return groupDigits(intPart, " ") + "," + fracPart + " " + sym
	}
	return sym + groupDigits(intPart, ",") + "." + fracPart
}

// groupDigits inserts sep between thousands groups of a non-negative
// integer string.
func groupDigits(s, sep string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
