package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders a duration at the resolution evaluation
// times actually span: microseconds below a millisecond, milliseconds below
// a second, and time.Duration's own rendering beyond that.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}
