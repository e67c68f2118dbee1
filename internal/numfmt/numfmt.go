// Package numfmt formats and parses numeric CSV field values for a locale.
//
// Integer grouping is delegated to golang.org/x/text/message. Parsing strips the
// locale's grouping separator, maps its decimal separator to '.', and hands
// the result to strconv. A nil *Locale means the C locale: no grouping and a
// '.' decimal separator.
package numfmt

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale carries the number conventions of one language.
type Locale struct {
	tag     language.Tag
	printer *message.Printer
	group   rune
	decimal rune
}

// New returns the conventions for tag, or nil for language.Und.
func New(tag language.Tag) *Locale {
	if tag == language.Und {
		return nil
	}
	p := message.NewPrinter(tag)
	l := &Locale{
		tag:     tag,
		printer: p,
		decimal: '.',
	}
	// Separators are read back from the printer's own output.
	if r := []rune(p.Sprintf("%d", 1000)); len(r) == 5 {
		l.group = r[1]
	}
	if r := []rune(p.Sprintf("%.1f", 1.5)); len(r) == 3 {
		l.decimal = r[1]
	}
	return l
}

// Tag returns the language tag, or language.Und for the C locale.
func (l *Locale) Tag() language.Tag {
	if l == nil {
		return language.Und
	}
	return l.tag
}

// Group returns the digit grouping separator, or 0 when the locale does not group.
func (l *Locale) Group() rune {
	if l == nil {
		return 0
	}
	return l.group
}

// Decimal returns the decimal separator.
func (l *Locale) Decimal() rune {
	if l == nil {
		return '.'
	}
	return l.decimal
}

// FormatInt formats a signed integer.
func (l *Locale) FormatInt(v int64) string {
	if l == nil {
		return strconv.FormatInt(v, 10)
	}
	return l.printer.Sprintf("%d", v)
}

// FormatUint formats an unsigned integer.
func (l *Locale) FormatUint(v uint64) string {
	if l == nil {
		return strconv.FormatUint(v, 10)
	}
	return l.printer.Sprintf("%d", v)
}

// FormatFloat formats a float with the shortest representation that
// round-trips at bitSize. Values with a decimal exponent in [-4, 21) are
// written in positional form with the integer part grouped; others keep an
// ASCII 'e' exponent. Only the separators are localized, so the result
// always parses back with ParseFloat.
func (l *Locale) FormatFloat(v float64, bitSize int) string {
	if l == nil {
		return strconv.FormatFloat(v, 'g', -1, bitSize)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, bitSize)
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		return l.localizeDecimal(strconv.FormatFloat(v, 'e', -1, bitSize))
	}

	text := strconv.FormatFloat(v, 'f', -1, bitSize)
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}
	intPart, frac, hasFrac := strings.Cut(text, ".")

	var sb strings.Builder
	sb.WriteString(sign)
	sb.WriteString(l.groupDigits(intPart))
	if hasFrac {
		sb.WriteRune(l.decimal)
		sb.WriteString(frac)
	}
	return sb.String()
}

// groupDigits inserts grouping separators into a run of ASCII digits.
func (l *Locale) groupDigits(digits string) string {
	if n, err := strconv.ParseUint(digits, 10, 64); err == nil {
		return l.printer.Sprintf("%d", n)
	}
	if l.group == 0 {
		return digits
	}
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteRune(l.group)
		}
		sb.WriteRune(d)
	}
	return sb.String()
}

func (l *Locale) localizeDecimal(text string) string {
	if l.decimal == '.' {
		return text
	}
	return strings.Replace(text, ".", string(l.decimal), 1)
}

// FormatBool formats a boolean as "true" or "false" in every locale.
func (l *Locale) FormatBool(v bool) string {
	return strconv.FormatBool(v)
}

// Normalize rewrites locale-formatted numeric text into the form strconv
// accepts: grouping separators are removed and the decimal separator
// becomes '.'.
func (l *Locale) Normalize(text string) string {
	text = strings.TrimSpace(text)
	if l == nil {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case l.group != 0 && r == l.group:
		case r == l.decimal:
			sb.WriteByte('.')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ParseInt parses locale-formatted text as a signed integer.
func (l *Locale) ParseInt(text string, bitSize int) (int64, error) {
	return strconv.ParseInt(l.Normalize(text), 10, bitSize)
}

// ParseUint parses locale-formatted text as an unsigned integer.
func (l *Locale) ParseUint(text string, bitSize int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(l.Normalize(text), "+"), 10, bitSize)
}

// ParseFloat parses locale-formatted text as a float.
func (l *Locale) ParseFloat(text string, bitSize int) (float64, error) {
	return strconv.ParseFloat(l.Normalize(text), bitSize)
}

// ParseBool parses text with strconv.ParseBool.
func (l *Locale) ParseBool(text string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(text))
}
