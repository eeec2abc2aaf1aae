package value

import (
	"strconv"
	"strings"
)

// ParseLiteral interprets non-formula raw input: empty text is Blank,
// TRUE/FALSE are booleans, decimal or scientific numbers and "N%" are
// numbers, anything else is text.
func ParseLiteral(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Blank()
	}
	switch strings.ToUpper(s) {
	case "TRUE":
		return Bool(true)
	case "FALSE":
		return Bool(false)
	}
	if n, ok := parseNumber(s); ok {
		return Number(n)
	}
	if p, ok := strings.CutSuffix(s, "%"); ok {
		if n, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
			return Number(n / 100)
		}
	}
	return Text(raw)
}
