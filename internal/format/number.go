package format

import "strings"

// FormatNumberString inserts comma thousand separators into a decimal
// number string. A leading minus sign is preserved. The input is assumed to
// be a well-formed integer string; it is returned grouped but otherwise
// unchanged.
//
// Parameters:
//   - s: The decimal string to group, e.g. "1234567".
//
// Returns:
//   - string: The grouped string, e.g. "1,234,567".
func FormatNumberString(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 1)
	if neg {
		b.WriteByte('-')
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
