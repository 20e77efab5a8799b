package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxCents is the largest amount the invoices.amount INTEGER column holds.
const MaxCents = math.MaxInt32

var (
	hundred  = decimal.NewFromInt(100)
	minCents = decimal.NewFromInt(1)
	maxCents = decimal.NewFromInt(MaxCents)
)

// ToCents converts a dollar amount to integer cents, rounding half away from
// zero. ok is false unless the result lies in [1, MaxCents].
func ToCents(dollars decimal.Decimal) (cents int64, ok bool) {
	d := dollars.Mul(hundred).Round(0)
	if d.LessThan(minCents) || d.GreaterThan(maxCents) {
		return 0, false
	}
	return d.IntPart(), true
}

// FromCents converts cents back to dollars.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCurrency renders cents as US dollars, e.g. 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	d := FromCents(cents)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
