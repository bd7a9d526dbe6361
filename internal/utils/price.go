// internal/utils/price.go
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Indian numbering units. Prices are stored in whole rupees; users enter and
// see price filters in crore.
const (
	Crore    = 10_000_000
	Lakh     = 100_000
	Thousand = 1_000
)

// CroreToRupees converts a crore amount to the canonical whole-rupee integer.
func CroreToRupees(v float64) int64 {
	return int64(math.Round(v * Crore))
}

// ParseCrore parses a decimal crore string into canonical rupees. A value
// that does not parse is treated as absent, not as an error; the listing
// client sends raw, occasionally empty strings for every filter field.
func ParseCrore(s string) (int64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return CroreToRupees(v), true
}

// FormatPrice renders a canonical rupee amount for display. Tier boundaries
// are inclusive: exactly one crore formats as "₹1.0Cr", not "₹100L".
func FormatPrice(amount int64) string {
	switch {
	case amount >= Crore:
		return fmt.Sprintf("₹%.1fCr", float64(amount)/Crore)
	case amount >= Lakh:
		return fmt.Sprintf("₹%.0fL", float64(amount)/Lakh)
	case amount >= Thousand:
		return fmt.Sprintf("₹%.0fK", float64(amount)/Thousand)
	default:
		return fmt.Sprintf("₹%d", amount)
	}
}

// ParseDisplayPrice inverts FormatPrice. The round trip loses the precision
// the display tier rounded away but never crosses tiers.
func ParseDisplayPrice(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "₹"))

	multiplier := float64(1)
	switch {
	case strings.HasSuffix(s, "Cr"):
		multiplier = Crore
		s = strings.TrimSuffix(s, "Cr")
	case strings.HasSuffix(s, "L"):
		multiplier = Lakh
		s = strings.TrimSuffix(s, "L")
	case strings.HasSuffix(s, "K"):
		multiplier = Thousand
		s = strings.TrimSuffix(s, "K")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}

	return int64(math.Round(v * multiplier)), nil
}
