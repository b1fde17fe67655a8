// Package edit performs structural mutations on the raw text of a
// specification document. It deliberately avoids a parse/reserialize
// round trip: the document is treated as a sequence of lines whose
// nesting is derived from indentation, so every line the mutation does
// not touch survives byte-for-byte, comments and formatting included.
//
// The dialect is indentation-regular: project entries sit at column
// zero, a node's keys are indented two columns past its anchor, and
// list entries two columns past their key. Each tree level therefore
// advances the anchor indentation by four columns.
package edit

import (
	"fmt"
	"strings"

	"github.com/c360studio/treegen/spec"
)

// Indentation geometry of the specification dialect.
const (
	keyOffset   = 2 // a node's keys relative to its anchor line
	entryOffset = 2 // list entries relative to their key line
)

// NotFoundError reports that a required anchor or parent could not be
// located in the specification text. The edit it aborted has not
// modified anything.
type NotFoundError struct {
	Segment string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("specification entry not found: %s", e.Segment)
}

// document holds the specification as a line vector plus whether the
// original text ended with a newline, which is preserved on output.
type document struct {
	lines    []string
	trailing bool
}

func newDocument(text string) *document {
	d := &document{trailing: strings.HasSuffix(text, "\n")}
	if text == "" {
		return d
	}
	d.lines = strings.Split(text, "\n")
	if d.trailing {
		d.lines = d.lines[:len(d.lines)-1]
	}
	return d
}

func (d *document) String() string {
	if len(d.lines) == 0 {
		return ""
	}
	s := strings.Join(d.lines, "\n")
	if d.trailing {
		s += "\n"
	}
	return s
}

// insert splices new lines in before position at.
func (d *document) insert(at int, lines ...string) {
	d.lines = append(d.lines[:at], append(append([]string{}, lines...), d.lines[at:]...)...)
}

// remove drops the half-open line range [from, to).
func (d *document) remove(from, to int) {
	d.lines = append(d.lines[:from], d.lines[to:]...)
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// projectStart returns the line index of the index-th project anchor
// (a "- name:" entry at column zero).
func (d *document) projectStart(index int) (int, error) {
	n := -1
	for i, line := range d.lines {
		if indentOf(line) == 0 && strings.HasPrefix(strings.TrimSpace(line), "- name:") {
			n++
			if n == index {
				return i, nil
			}
		}
	}
	return 0, &NotFoundError{Segment: fmt.Sprintf("projects[%d]", index)}
}

// blockEnd returns the exclusive end of the block owned by the anchor
// at start: every following line indented deeper than the anchor, with
// interior blank lines swallowed only when deeper content follows.
func (d *document) blockEnd(start int) int {
	base := indentOf(d.lines[start])
	end := start + 1
	for i := start + 1; i < len(d.lines); i++ {
		if isBlank(d.lines[i]) {
			continue
		}
		if indentOf(d.lines[i]) <= base {
			break
		}
		end = i + 1
	}
	return end
}

// findKey locates a section key ("tree:" or "file:") at the given
// indentation within [from, to). Returns -1 when absent.
func (d *document) findKey(from, to int, key string, indent int) int {
	for i := from; i < to && i < len(d.lines); i++ {
		line := d.lines[i]
		if !isBlank(line) && indentOf(line) == indent && strings.TrimSpace(line) == key {
			return i
		}
	}
	return -1
}

// keyEnd returns the exclusive end of a key's entry list: every
// following line indented deeper than the key line.
func (d *document) keyEnd(key int) int {
	return d.blockEnd(key)
}

// findEntry locates a "- name: X" list entry at the given indentation
// within [from, to). Returns -1 when absent.
func (d *document) findEntry(from, to int, indent int, name string) int {
	want := "- name: " + name
	for i := from; i < to && i < len(d.lines); i++ {
		line := d.lines[i]
		if !isBlank(line) && indentOf(line) == indent && strings.TrimSpace(line) == want {
			return i
		}
	}
	return -1
}

// moduleAnchor walks a module-name path from the project's anchor and
// returns the line index of the final module's entry. Clone targets
// match by their derived repository name. Each missing segment aborts
// with a NotFoundError naming it.
func (d *document) moduleAnchor(projectIndex int, path []string) (int, error) {
	anchor, err := d.projectStart(projectIndex)
	if err != nil {
		return 0, err
	}
	for _, seg := range path {
		scopeEnd := d.blockEnd(anchor)
		keyIndent := indentOf(d.lines[anchor]) + keyOffset
		key := d.findKey(anchor+1, scopeEnd, "tree:", keyIndent)
		if key == -1 {
			return 0, &NotFoundError{Segment: seg}
		}
		entry := d.findModuleEntry(key+1, d.keyEnd(key), keyIndent+entryOffset, seg)
		if entry == -1 {
			return 0, &NotFoundError{Segment: seg}
		}
		anchor = entry
	}
	return anchor, nil
}

// findModuleEntry locates a module list entry at the given indentation:
// either "- name: X", or a "- from:" clone entry whose repository name
// resolves to X. Returns -1 when absent.
func (d *document) findModuleEntry(from, to int, indent int, name string) int {
	if i := d.findEntry(from, to, indent, name); i != -1 {
		return i
	}
	for i := from; i < to && i < len(d.lines); i++ {
		line := d.lines[i]
		if isBlank(line) || indentOf(line) != indent {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if url, ok := strings.CutPrefix(trimmed, "- from: "); ok && spec.CloneName(url) == name {
			return i
		}
	}
	return -1
}

// dropEmptySections removes every section key of the given name that no
// longer has any list entry beneath it. A single pass suffices: deleting
// a childless key line cannot empty any other section.
func (d *document) dropEmptySections(key string) {
	var kept []string
	for i := 0; i < len(d.lines); i++ {
		line := d.lines[i]
		if strings.TrimSpace(line) == key {
			indent := indentOf(line)
			hasEntries := false
			for j := i + 1; j < len(d.lines); j++ {
				next := d.lines[j]
				if isBlank(next) {
					continue
				}
				if indentOf(next) > indent && strings.HasPrefix(strings.TrimSpace(next), "- ") {
					hasEntries = true
				}
				break
			}
			if !hasEntries {
				continue
			}
		}
		kept = append(kept, line)
	}
	d.lines = kept
}
