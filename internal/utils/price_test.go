// internal/utils/price_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCroreToRupees(t *testing.T) {
	assert.Equal(t, int64(10_000_000), CroreToRupees(1))
	assert.Equal(t, int64(25_000_000), CroreToRupees(2.5))
	assert.Equal(t, int64(5_000_000), CroreToRupees(0.5))
	assert.Equal(t, int64(0), CroreToRupees(0))

	// Fractional rupees round to the nearest whole rupee
	assert.Equal(t, int64(12_345_679), CroreToRupees(1.23456789))
}

func TestParseCrore(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"1", 10_000_000, true},
		{"2.5", 25_000_000, true},
		{" 0.75 ", 7_500_000, true},
		{"-1", -10_000_000, true}, // negatives parse; the query just matches nothing
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseCrore(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{25_000_000, "₹2.5Cr"},
		{10_000_000, "₹1.0Cr"}, // exactly one crore is crore-tier, not lakh
		{9_999_999, "₹100L"},
		{100_000, "₹1L"},
		{99_999, "₹100K"},
		{1_000, "₹1K"},
		{999, "₹999"},
		{0, "₹0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.amount), "amount %d", tt.amount)
	}
}

func TestParseDisplayPrice(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"₹2.5Cr", 25_000_000},
		{"₹1.0Cr", 10_000_000},
		{"₹100L", 10_000_000},
		{"₹999", 999},
		{"1.5Cr", 15_000_000}, // rupee sign optional
	}

	for _, tt := range tests {
		got, err := ParseDisplayPrice(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}

	_, err := ParseDisplayPrice("₹abcCr")
	assert.Error(t, err)
}

func TestFormatPriceRoundTripStaysInTier(t *testing.T) {
	amounts := []int64{10_000_000, 12_345_678, 25_000_000, 100_000, 550_000, 1_000, 999}

	for _, amount := range amounts {
		parsed, err := ParseDisplayPrice(FormatPrice(amount))
		require.NoError(t, err)
		assert.Equal(t, FormatPrice(amount), FormatPrice(parsed), "amount %d", amount)
	}
}
