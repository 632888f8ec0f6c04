// Package humanize renders byte counts, durations and counters for display.
package humanize

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const unitBase = 1024

// sizeUnits lists units from smallest to the terminal one
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

const (
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// Ellipsis is appended by Truncate
const Ellipsis = "..."

var printer = message.NewPrinter(language.English)

// Size formats a byte count with one decimal using the largest unit that keeps
// the value below 1024. PB is never scaled further.
func Size(bytes float64) string {
	if bytes < 0 {
		bytes = 0
	}
	last := len(sizeUnits) - 1
	for _, unit := range sizeUnits[:last] {
		if bytes < unitBase {
			return fmt.Sprintf("%.1f %s", bytes, unit)
		}
		bytes /= unitBase
	}
	return fmt.Sprintf("%.1f %s", bytes, sizeUnits[last])
}

// Speed formats a transfer rate in bytes per second
func Speed(bytesPerSec float64) string {
	return Size(bytesPerSec) + "/s"
}

// Duration formats seconds as H:MM:SS, or MM:SS below one hour
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / secondsPerHour
	minutes := (seconds % secondsPerHour) / secondsPerMinute
	secs := seconds % secondsPerMinute

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// Number groups thousands: 1234567 -> 1,234,567
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Truncate shortens s to at most limit runes, appending Ellipsis when cut
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if limit < 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + Ellipsis
}
