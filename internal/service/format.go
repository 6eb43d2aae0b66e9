package service

import (
	"fmt"
	"strings"
)

// FormatDuration renders whole seconds for display, e.g. 42 -> "42초",
// 125 -> "2분 5초". Negative values are treated as zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	mins := seconds / 60
	secs := seconds % 60
	if mins > 0 {
		return fmt.Sprintf("%d분 %d초", mins, secs)
	}

	return fmt.Sprintf("%d초", secs)
}

// FormatDateLabel renders a YYYY-MM-DD date for display, e.g. "2024-03-05"
// -> "2024년 03월 05일". Malformed input is returned unchanged.
func FormatDateLabel(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}

	return fmt.Sprintf("%s년 %s월 %s일", parts[0], parts[1], parts[2])
}
