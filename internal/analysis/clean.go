package analysis

import "strings"

// StripFences removes a leading ```json or ``` fence and a trailing ```
// fence if present, tolerating whitespace around the fences. The provider
// sometimes ignores the "no markdown" instruction. Unfenced input is
// returned trimmed but otherwise byte-identical.
func StripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimLeft(s, " \t\r\n")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimLeft(s, " \t\r\n")
	}

	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimRight(s, " \t\r\n")
	}

	return s
}
