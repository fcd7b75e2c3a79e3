package ast

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseNumberLiteral converts the raw source spelling of a numeric
// literal to its value. It understands decimal (including fractions and
// exponents), 0x/0X hex, 0b/0B binary, 0o/0O octal, legacy leading-zero
// octal, and numeric separators. Returns false when the text is not a
// number.
func ParseNumberLiteral(raw string) (float64, bool) {
	s := strings.ReplaceAll(raw, "_", "")
	if s == "" {
		return 0, false
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return parseRadix(s[2:], 16)
		case 'b', 'B':
			return parseRadix(s[2:], 2)
		case 'o', 'O':
			return parseRadix(s[2:], 8)
		}
	}
	if isLegacyOctal(s) {
		return parseRadix(s[1:], 8)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseRadix(digits string, base int) (float64, bool) {
	if digits == "" {
		return 0, false
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err == nil {
		return float64(u), true
	}
	// too wide for uint64: accumulate, accepting float64 rounding
	var v float64
	for i := 0; i < len(digits); i++ {
		d := digitValue(digits[i])
		if d < 0 || d >= base {
			return 0, false
		}
		v = v*float64(base) + float64(d)
	}
	return v, true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func isLegacyOctal(s string) bool {
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return true
}

// IsRadixForm reports whether raw is spelled in a non-decimal radix:
// a 0x/0b/0o prefix or a legacy leading-zero octal.
func IsRadixForm(raw string) bool {
	s := strings.ReplaceAll(raw, "_", "")
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			return true
		}
	}
	return isLegacyOctal(s)
}

// FormatNumber renders a value in canonical decimal form: the shortest
// fixed-notation decimal that round-trips. Non-finite values render as
// the global identifiers JavaScript prints them as.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// UnquoteString decodes the raw quoted source text of a string literal,
// resolving escape sequences. Returns false on malformed input.
func UnquoteString(raw string) (string, bool) {
	if len(raw) < 2 {
		return "", false
	}
	quote := raw[0]
	if (quote != '\'' && quote != '"') || raw[len(raw)-1] != quote {
		return "", false
	}
	body := raw[1 : len(raw)-1]

	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", false
		}
		esc := body[i+1]
		i += 2
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 > len(body) {
				return "", false
			}
			n, err := strconv.ParseUint(body[i:i+2], 16, 8)
			if err != nil {
				return "", false
			}
			b.WriteRune(rune(n))
			i += 2
		case 'u':
			r, next, ok := decodeUnicodeEscape(body, i)
			if !ok {
				return "", false
			}
			b.WriteRune(r)
			i = next
		case '\n':
			// line continuation
		default:
			b.WriteByte(esc)
		}
	}
	return b.String(), true
}

func decodeUnicodeEscape(body string, i int) (rune, int, bool) {
	if i < len(body) && body[i] == '{' {
		end := strings.IndexByte(body[i:], '}')
		if end < 0 {
			return 0, 0, false
		}
		n, err := strconv.ParseUint(body[i+1:i+end], 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, 0, false
		}
		return rune(n), i + end + 1, true
	}
	if i+4 > len(body) {
		return 0, 0, false
	}
	n, err := strconv.ParseUint(body[i:i+4], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	return rune(n), i + 4, true
}

// HasEncodedEscape reports whether raw contains a \x or \u escape
// sequence, skipping escaped backslashes.
func HasEncodedEscape(raw string) bool {
	for i := 0; i+1 < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		switch raw[i+1] {
		case 'x', 'u':
			return true
		}
		i++ // skip the escaped character
	}
	return false
}

// QuoteString renders a string value as a canonical single-quoted
// literal, escaping only what the grammar requires. Decoded unicode
// content is emitted as literal characters.
func QuoteString(value string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 {
				b.WriteString(`\x`)
				const hex = "0123456789abcdef"
				b.WriteByte(hex[r>>4])
				b.WriteByte(hex[r&0xf])
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('\'')
	return b.String()
}
