// Package utils holds small text helpers shared by the render layers.
package utils

// Truncate returns a truncated string with "..." if it exceeds maxLen.
// Unicode-safe: counts runes, not bytes.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
