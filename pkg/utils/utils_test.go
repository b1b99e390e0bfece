package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateToDate(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "strips time of day",
			input:    time.Date(2025, 1, 10, 17, 45, 12, 99, time.UTC),
			expected: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "keeps local calendar day",
			input:    time.Date(2025, 1, 10, 23, 30, 0, 0, saoPaulo),
			expected: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "already midnight",
			input:    time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateToDate(tt.input))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{name: "same day", start: base, end: base.Add(20 * time.Hour), expected: 0},
		{name: "five days later", start: base, end: base.AddDate(0, 0, 5), expected: 5},
		{name: "earlier end", start: base, end: base.AddDate(0, 0, -3), expected: -3},
		{name: "across month end", start: time.Date(2025, 1, 30, 10, 0, 0, 0, time.UTC), end: time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC), expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(tt.start, tt.end))
		})
	}
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate(" 2025-01-05 ")
	require.NoError(t, err)
	assert.Equal(t, "05/01/2025", FormatDateBR(d))

	_, err = ParseDate("05/01/2025")
	assert.Error(t, err)
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.RequireFromString("100"), "R$100,00"},
		{decimal.RequireFromString("105.5"), "R$105,50"},
		{decimal.RequireFromString("0.105"), "R$0,11"},
		{decimal.RequireFromString("1234.5"), "R$1.234,50"},
		{decimal.RequireFromString("1234567.891"), "R$1.234.567,89"},
		{decimal.RequireFromString("-12.3"), "-R$12,30"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBRL(tt.amount))
		})
	}
}

func TestDecimalPlaces(t *testing.T) {
	assert.Equal(t, int32(0), DecimalPlaces(decimal.RequireFromString("100")))
	assert.Equal(t, int32(1), DecimalPlaces(decimal.RequireFromString("10.50")))
	assert.Equal(t, int32(2), DecimalPlaces(decimal.RequireFromString("10.55")))
	assert.Equal(t, int32(3), DecimalPlaces(decimal.RequireFromString("0.001")))
}
