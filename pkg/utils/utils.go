package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AddMonths adds n calendar months to t, clamping the day to the last day of the target month.
// Jan 31 + 1 month is Feb 28 (or 29), never Mar 3.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := DaysInMonth(first.Year(), first.Month())
	if day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds returns the first instant of the month and the first instant of the following month.
// Callers should treat the range as [start, end).
func MonthBounds(year, month int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// IsDateOverdue checks if a date is before asOf
func IsDateOverdue(dueDate, asOf time.Time) bool {
	return asOf.After(dueDate)
}

// NormalizeCategory lower-cases and trims a category label so lookups are case-insensitive
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// Percent returns part/whole*100. The caller must guard whole == 0.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	return part.Mul(hundred).Div(whole)
}

// MonthlyRate converts an annual percentage (4.0 == 4%) into a monthly fraction
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(decimal.NewFromInt(12))
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
