// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount as dollars with exactly two decimals,
// rounding the exact binary value half away from zero (1.005 is stored
// just below 1.005, so it prints "$1.00").
// e.g., 1234.5 -> "$1234.50", -3 -> "-$3.00"
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0.00"
	}
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	d := decimal.NewFromFloatWithExponent(v, -2)
	if d.IsZero() {
		sign = ""
	}
	return sign + "$" + d.StringFixed(2)
}

// FormatCompactMoney formats large amounts with suffixes for chart captions.
// e.g., 1234 -> "$1.2K", 2500000 -> "$2.5M"
func FormatCompactMoney(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return FormatMoney(v)
	}
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

// FormatAge formats how long ago t was, e.g. "12s ago", "3m ago".
func FormatAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh %dm ago", int(d.Hours()), int(d.Minutes())%60)
	}
}

// FormatDelta formats a signed integer change, e.g. "+3", "-1", "0".
func FormatDelta(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
