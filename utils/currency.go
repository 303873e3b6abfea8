package utils

import (
	"fmt"
	"math"
	"strings"
)

// MaxAmount is the largest dollar amount a decimal(10,2) column holds.
const MaxAmount = 99999999.99

// ToCents converts a dollar amount to whole cents, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts whole cents back to a dollar amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// FormatCurrency formats an amount as US dollars.
// Example: 1234.5 -> "$1,234.50"
func FormatCurrency(amount float64) string {
	cents := ToCents(amount)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	integerPart := fmt.Sprintf("%d", cents/100)
	decimalPart := fmt.Sprintf("%02d", cents%100)

	// Tambahkan pemisah ribuan
	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + "$" + strings.Join(groups, ",") + "." + decimalPart
}
