package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "zero months",
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			months:   0,
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "plain month",
			start:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "end of month clamps in leap year",
			start:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "end of month clamps in common year",
			start:    time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "clamp is not carried forward",
			start:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   2,
			expected: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "crosses year boundary",
			start:    time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
			months:   3,
			expected: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "ten years",
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			months:   119,
			expected: time.Date(2033, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.start, tt.months))
		})
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2024, 12, nil)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "food", NormalizeCategory("  Food "))
	assert.Equal(t, "transport", NormalizeCategory("TRANSPORT"))
	assert.Equal(t, "", NormalizeCategory("   "))
}

func TestPercent(t *testing.T) {
	result := Percent(decimal.NewFromInt(4200), decimal.NewFromInt(5000))
	assert.True(t, result.Equal(decimal.NewFromInt(84)), "got %s", result)
}

func TestMonthlyRate(t *testing.T) {
	result := MonthlyRate(decimal.NewFromInt(12))
	assert.True(t, result.Equal(decimal.RequireFromString("0.01")), "got %s", result)
}

func TestIsDateOverdue(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsDateOverdue(due, due.AddDate(0, 0, 1)))
	assert.False(t, IsDateOverdue(due, due))
	assert.False(t, IsDateOverdue(due, due.AddDate(0, 0, -1)))
}
