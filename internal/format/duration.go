// Package format provides the duration and size formatting shared by the
// CLI, the result file and the dashboard.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatSeconds formats d as fractional seconds with millisecond precision,
// the form used by the lut: and time: lines.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// FormatRate formats a per-second rate with a k/M suffix.
func FormatRate(perSecond float64, unit string) string {
	switch {
	case perSecond >= 1e6:
		return fmt.Sprintf("%.2fM %s/s", perSecond/1e6, unit)
	case perSecond >= 1e3:
		return fmt.Sprintf("%.1fk %s/s", perSecond/1e3, unit)
	default:
		return fmt.Sprintf("%.0f %s/s", perSecond, unit)
	}
}
