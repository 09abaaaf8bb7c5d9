package utils

// Truncate shortens s to at most max runes, marking the cut with "...".
// Counting runes instead of bytes keeps accented text from being split
// mid-character.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
