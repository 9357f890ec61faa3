package logutil

// TruncateForLog shortens s to at most maxLen runes, appending "..." when cut.
// Completion texts and prompts go through it before being logged.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
