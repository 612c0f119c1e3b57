package importer

import "strings"

// line is a retained input line with its 1-based position in the file.
type line struct {
	number  int
	content string
}

// splitLines keeps every line that has non-whitespace content. Line numbers
// count blank lines too, so they match what an editor shows.
func splitLines(data []byte) []line {
	raw := strings.Split(string(data), "\n")
	out := make([]line, 0, len(raw))
	for i, content := range raw {
		content = strings.TrimSuffix(content, "\r")
		if strings.TrimSpace(content) == "" {
			continue
		}
		out = append(out, line{number: i + 1, content: content})
	}
	return out
}
