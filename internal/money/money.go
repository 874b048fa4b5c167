// Package money provides amount formatting helpers.
package money

import (
	"fmt"
	"math"
	"strings"
)

// Format renders an amount as a dollar string with thousands separators,
// e.g. 1234.5 -> "$1,234.50". Negative amounts keep the sign before the
// currency symbol: "-$12.00".
func Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	// Round to cents first so 999.999 formats as $1,000.00, not $999.100.
	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	return fmt.Sprintf("%s$%s.%02d", sign, group(whole), frac)
}

// group inserts comma separators into a non-negative integer.
func group(n int64) string {
	s := fmt.Sprintf("%d", n)
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
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
