package format

import (
	"fmt"
	"math"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%d\u00b5s", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatNanosMillis renders a duration as "1234567 ns (1.235 ms)".
func FormatNanosMillis(d time.Duration) string {
	return fmt.Sprintf("%d ns (%.3f ms)", d.Nanoseconds(), float64(d.Nanoseconds())/1e6)
}

// FormatSpeedup renders a ratio with three decimals, or "n/a" when it is
// not a finite number.
func FormatSpeedup(s float64) string {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", s)
}
