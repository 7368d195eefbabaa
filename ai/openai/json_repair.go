package openai

import "strings"

// repairJSON fixes the one malformed-JSON fault small models produce often
// enough to matter: object keys missing their opening quote, as in
// `{title": "x"}` or `, tags": []`. Anything it does not recognize is copied
// through untouched.
func repairJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 16)

	runes := []rune(s)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		out.WriteRune(ch)
		i++

		if ch != '{' && ch != ',' {
			continue
		}

		// Copy whitespace after the opener.
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t') {
			out.WriteRune(runes[i])
			i++
		}

		// A bare identifier here is only a broken key if it runs into `":`.
		if i >= len(runes) || !isLetter(runes[i]) {
			continue
		}
		start := i
		for i < len(runes) && (isLetter(runes[i]) || runes[i] == '_') {
			i++
		}
		if i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
			out.WriteRune('"')
		}
		out.WriteString(string(runes[start:i]))
	}

	return out.String()
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
