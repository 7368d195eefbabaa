package core

// TruncateRunes returns the first n runes of s. It never splits a multi-byte
// character, which a plain byte slice would. Display summaries and index
// snippets are both bounded this way.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
