// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatCount formats a cigarette count with comma separators.
func FormatCount(n int) string {
	return FormatNumber(int64(n))
}

// FormatCost formats a monetary amount with the configured currency symbol.
// Precision scales down as the amount grows.
func FormatCost(currency string, amount float64) string {
	if currency == "" {
		currency = "$"
	}
	if amount >= 1000 {
		return currency + FormatNumber(int64(math.Round(amount)))
	}
	if amount >= 100 {
		return fmt.Sprintf("%s%.0f", currency, amount)
	}
	return fmt.Sprintf("%s%.2f", currency, amount)
}

// FormatMinutes formats a minute total as days/hours/minutes.
// e.g., 90 -> "1h 30m", 3000 -> "2d 2h", 45 -> "45m"
func FormatMinutes(mins int) string {
	if mins <= 0 {
		return "0m"
	}

	days := mins / (24 * 60)
	hours := (mins % (24 * 60)) / 60
	rem := mins % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, rem)
	}
	return fmt.Sprintf("%dm", rem)
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

// FormatPercent formats a 0-100 percentage value.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatSignedPercent formats a percentage change with an explicit sign.
func FormatSignedPercent(pct float64) string {
	if pct >= 0 {
		return "+" + FormatPercent(pct)
	}
	return FormatPercent(pct)
}

// FormatHour renders an hour of day (0-23) as a 12-hour clock label.
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// FormatTimestamp renders an epoch-millisecond timestamp in local time.
func FormatTimestamp(millis int64) string {
	return time.UnixMilli(millis).Format("Jan 2 15:04")
}

// FormatDate renders an epoch-millisecond timestamp as a local date.
func FormatDate(millis int64) string {
	return time.UnixMilli(millis).Format("2006-01-02")
}

// FormatRelative describes how long ago a time was, coarsely.
func FormatRelative(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
