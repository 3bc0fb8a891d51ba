// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats a USD amount with precision scaled to magnitude.
// e.g., 1234567.8 -> "$1,234,568", 42.5 -> "$42.50"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	if v >= 1000 {
		return "$" + FormatNumber(int64(math.Round(v)))
	}
	if v >= 100 {
		return fmt.Sprintf("$%.0f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

// FormatROI formats an ROI ratio as a multiplier, e.g. 1.53 -> "1.53x".
func FormatROI(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return "-" + FormatMoney(-delta)
}

// FormatFloat trims a float to two decimals for table cells.
func FormatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
