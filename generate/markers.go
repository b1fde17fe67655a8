package generate

import (
	"strings"

	"github.com/c360studio/treegen/lang"
)

// markerBlock renders a complete auto-generated declaration block,
// delimited by the language's marker comments.
func markerBlock(prefix string, decls []string) string {
	var b strings.Builder
	b.WriteString(prefix + " " + lang.MarkerStart + "\n")
	for _, d := range decls {
		b.WriteString(d + "\n")
	}
	b.WriteString(prefix + " " + lang.MarkerEnd + "\n")
	return b.String()
}

// updateMarkers rewrites the declaration block inside existing file
// content. Text outside the markers survives byte-for-byte. When the
// file carries no markers yet, the block is inserted at the top,
// separated from the existing content by a blank line.
func updateMarkers(existing, prefix string, decls []string) string {
	startLine := prefix + " " + lang.MarkerStart
	endLine := prefix + " " + lang.MarkerEnd

	lines := strings.Split(existing, "\n")
	start, end := -1, -1
	for i, line := range lines {
		if strings.TrimSpace(line) == startLine && start == -1 {
			start = i
			continue
		}
		if start != -1 && strings.TrimSpace(line) == endLine {
			end = i
			break
		}
	}

	if start == -1 || end == -1 {
		block := markerBlock(prefix, decls)
		if strings.TrimSpace(existing) == "" {
			return block
		}
		return block + "\n" + existing
	}

	var out []string
	out = append(out, lines[:start+1]...)
	out = append(out, decls...)
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n")
}
