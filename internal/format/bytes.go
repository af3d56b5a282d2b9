package format

import "fmt"

// FormatBytes formats a byte count using binary (IEC) units.
//
// Parameters:
//   - b: The number of bytes.
//
// Returns:
//   - string: A human-readable size such as "512 B" or "1.5 MiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
