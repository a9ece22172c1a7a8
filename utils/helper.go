package utils

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

/* Pointer helpers */

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

/* String normalization */

// NormalizeKey lowercases, trims and collapses runs of whitespace/punctuation
// into single spaces. Content matching across data sources depends on two
// differently-entered strings normalizing to the same key.
func NormalizeKey(parts ...string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		lastSpace := true
		for _, r := range strings.ToLower(strings.TrimSpace(part)) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
				lastSpace = false
				continue
			}
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

/* Decimal helpers */

// DecimalMax returns the larger of a and b.
func DecimalMax(a, b decimal.Decimal) decimal.Decimal {
	if b.GreaterThan(a) {
		return b
	}
	return a
}
