package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage format of due dates.
const DateLayout = "2006-01-02"

// DisplayDateLayout is the dd/mm/yyyy format used in messages.
const DisplayDateLayout = "02/01/2006"

// TruncateToDate strips the time of day, keeping the calendar day as seen in t's location.
// The result is midnight UTC so that day arithmetic never crosses a DST change.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from start to end (negative when end is earlier).
func DaysBetween(start, end time.Time) int {
	return int(TruncateToDate(end).Sub(TruncateToDate(start)).Hours() / 24)
}

// ParseDate parses a yyyy-mm-dd date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDateBR formats a date as dd/mm/yyyy.
func FormatDateBR(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// FormatBRL formats an amount as Brazilian currency, e.g. R$1.234,56.
// Rounding to cents happens here and only here.
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$" + b.String() + "," + fracPart
	if negative {
		return "-" + out
	}
	return out
}

// DecimalPlaces returns the number of digits after the decimal point that d needs.
func DecimalPlaces(d decimal.Decimal) int32 {
	// String drops trailing zeros, so 10.50 reports one place
	if _, frac, ok := strings.Cut(d.String(), "."); ok {
		return int32(len(frac))
	}
	return 0
}
