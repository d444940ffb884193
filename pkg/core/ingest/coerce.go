package ingest

import (
	"strconv"
	"strings"
)

// CoerceNumber converts arbitrary cell text to a finite float. Anything
// that does not parse after cleanup (thousands separators, currency signs,
// surrounding whitespace, accounting-style parentheses) coerces to 0, the
// fill-with-zero behavior the downstream math expects.
func CoerceNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return 0
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+', r == 'e', r == 'E':
			b.WriteRune(r)
		case r == ',', r == ' ', r == ' ', r == '$', r == '€', r == '₫', r == '%':
			// separators and unit decorations
		default:
			return 0
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	if negative {
		v = -v
	}
	return v
}
