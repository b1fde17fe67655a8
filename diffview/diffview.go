// Package diffview renders a line diff between two versions of the
// specification document, for previewing what an edit will rewrite.
package diffview

import "strings"

// ANSI sequences used when color is enabled.
const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorReset = "\x1b[0m"
)

// lookahead bounds how far a changed line is searched for on the other
// side before the change is treated as a replacement.
const lookahead = 10

// Options controls rendering.
type Options struct {
	// Color wraps added lines in green and removed lines in red.
	Color bool
}

// Render produces a full-document line diff from before to after.
// Unchanged lines are indented two spaces; additions and removals carry
// "+ " and "- " prefixes.
func Render(before, after string, opts Options) string {
	a := splitLines(before)
	b := splitLines(after)

	var out strings.Builder
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i >= len(a):
			writeAdded(&out, b[j], opts)
			j++
		case j >= len(b):
			writeRemoved(&out, a[i], opts)
			i++
		case a[i] == b[j]:
			out.WriteString("  " + a[i] + "\n")
			i++
			j++
		case indexWithin(b, j+1, a[i]) != -1:
			// The old line reappears later: everything before it is new.
			writeAdded(&out, b[j], opts)
			j++
		case indexWithin(a, i+1, b[j]) != -1:
			writeRemoved(&out, a[i], opts)
			i++
		default:
			writeRemoved(&out, a[i], opts)
			writeAdded(&out, b[j], opts)
			i++
			j++
		}
	}
	return out.String()
}

// Changed reports whether the two documents differ at all.
func Changed(before, after string) bool {
	return before != after
}

func writeAdded(out *strings.Builder, line string, opts Options) {
	if opts.Color {
		out.WriteString(colorGreen + "+ " + line + colorReset + "\n")
		return
	}
	out.WriteString("+ " + line + "\n")
}

func writeRemoved(out *strings.Builder, line string, opts Options) {
	if opts.Color {
		out.WriteString(colorRed + "- " + line + colorReset + "\n")
		return
	}
	out.WriteString("- " + line + "\n")
}

func indexWithin(lines []string, from int, want string) int {
	end := from + lookahead
	if end > len(lines) {
		end = len(lines)
	}
	for i := from; i < end; i++ {
		if lines[i] == want {
			return i
		}
	}
	return -1
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
