package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats d with a unit suited to its size:
// microseconds below a millisecond, milliseconds below a second, and
// time.Duration's own form beyond that.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatETA renders an estimated remaining time at minute or second
// granularity. Non-positive values mean no estimate is available yet.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		if s := int(eta.Seconds()) % 60; s != 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	}
	h := int(eta.Hours())
	if m := int(eta.Minutes()) % 60; m != 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
