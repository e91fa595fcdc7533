package utils

import "strings"

// TruncateForLog shortens the provided string to the specified rune limit,
// appending an ellipsis when truncated. A non-positive limit yields an empty
// string so callers can disable payload logging entirely.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
