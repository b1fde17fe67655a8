package edit

import (
	"strings"

	"github.com/c360studio/treegen/lang"
)

// Child is one node of a subtree being grafted into the specification,
// as discovered on disk by the scanner.
type Child struct {
	Name     string
	IsDir    bool
	Children []Child
}

// Add records a path in the specification and returns the rewritten
// document text. The path is given as slash-free segments relative to
// the project's materialization root. Missing intermediate modules are
// created on the way down; a file whose name ends with the language's
// default extension is recorded bare. For directories, children holds
// the subtree to record beneath the new module. Adding an entry that is
// already present is a no-op, so Add is idempotent.
func Add(text string, projectIndex int, segments []string, isDir bool, l lang.Language, children []Child) (string, error) {
	if len(segments) == 0 {
		return text, nil
	}
	d := newDocument(text)

	if isDir {
		anchor, err := ensureTreePath(d, projectIndex, segments)
		if err != nil {
			return "", err
		}
		addChildren(d, anchor, l, children)
		return d.String(), nil
	}

	anchor, err := d.projectStart(projectIndex)
	if err != nil {
		return "", err
	}
	if parent := segments[:len(segments)-1]; len(parent) > 0 {
		anchor, err = ensureTreePath(d, projectIndex, parent)
		if err != nil {
			return "", err
		}
	}
	addFileEntry(d, anchor, entryName(segments[len(segments)-1], l))
	return d.String(), nil
}

// entryName strips the language's default extension so the entry is
// recorded the way an author would write it; foreign extensions are
// kept verbatim.
func entryName(filename string, l lang.Language) string {
	if ext := l.Ext(); ext != "" && strings.HasSuffix(filename, ext) && len(filename) > len(ext) {
		return strings.TrimSuffix(filename, ext)
	}
	return filename
}

// ensureTreePath walks the module path from the project anchor,
// creating any missing tree: keys and module entries, and returns the
// line index of the final module's anchor.
func ensureTreePath(d *document, projectIndex int, path []string) (int, error) {
	anchor, err := d.projectStart(projectIndex)
	if err != nil {
		return 0, err
	}
	for _, seg := range path {
		anchor = ensureModule(d, anchor, seg)
	}
	return anchor, nil
}

// ensureModule guarantees a "- name: seg" entry in the parent's tree:
// section, creating the key and the entry as needed, and returns the
// entry's line index. New entries are appended after the parent's last
// existing child, so every insertion lands strictly below the parent
// anchor and leaves its index valid.
func ensureModule(d *document, parent int, seg string) int {
	scopeEnd := d.blockEnd(parent)
	keyIndent := indentOf(d.lines[parent]) + keyOffset
	entryIndent := keyIndent + entryOffset

	key := d.findKey(parent+1, scopeEnd, "tree:", keyIndent)
	if key == -1 {
		d.insert(scopeEnd,
			pad(keyIndent)+"tree:",
			pad(entryIndent)+"- name: "+seg,
		)
		return scopeEnd + 1
	}

	end := d.keyEnd(key)
	if entry := d.findEntry(key+1, end, entryIndent, seg); entry != -1 {
		return entry
	}
	d.insert(end, pad(entryIndent)+"- name: "+seg)
	return end
}

// addFileEntry guarantees a "- name: X" entry in the parent's file:
// section. A new file: key is placed after the parent's attribute
// lines, before any tree: key.
func addFileEntry(d *document, parent int, name string) {
	scopeEnd := d.blockEnd(parent)
	keyIndent := indentOf(d.lines[parent]) + keyOffset
	entryIndent := keyIndent + entryOffset

	key := d.findKey(parent+1, scopeEnd, "file:", keyIndent)
	if key == -1 {
		at := d.findKey(parent+1, scopeEnd, "tree:", keyIndent)
		if at == -1 {
			at = scopeEnd
		}
		d.insert(at,
			pad(keyIndent)+"file:",
			pad(entryIndent)+"- name: "+name,
		)
		return
	}

	end := d.keyEnd(key)
	if d.findEntry(key+1, end, entryIndent, name) != -1 {
		return
	}
	d.insert(end, pad(entryIndent)+"- name: "+name)
}

// addChildren records a scanned subtree beneath the module at anchor.
// Files first, then directories depth-first; every insertion happens
// below the anchor, which therefore stays valid across the loop.
func addChildren(d *document, anchor int, l lang.Language, children []Child) {
	for _, c := range children {
		if !c.IsDir {
			addFileEntry(d, anchor, entryName(c.Name, l))
		}
	}
	for _, c := range children {
		if c.IsDir {
			child := ensureModule(d, anchor, c.Name)
			addChildren(d, child, l, c.Children)
		}
	}
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}
