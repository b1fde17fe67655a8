package edit

import "strings"

// AppendProject adds a rendered project block at the end of the
// document, separated from existing content by a blank line. The block
// is trimmed of surrounding blank lines before insertion and the result
// always ends with a newline.
func AppendProject(text, block string) string {
	d := newDocument(text)
	d.trailing = true

	blockLines := strings.Split(strings.Trim(block, "\n"), "\n")
	for len(d.lines) > 0 && isBlank(d.lines[len(d.lines)-1]) {
		d.lines = d.lines[:len(d.lines)-1]
	}
	if len(d.lines) > 0 {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, blockLines...)
	return d.String()
}

// AddCloneTarget records a "- from: url" clone entry in the tree:
// section of the module at path under the given project, creating
// missing intermediate modules. Adding a URL that is already recorded
// in that section is a no-op.
func AddCloneTarget(text string, projectIndex int, path []string, url string) (string, error) {
	d := newDocument(text)

	anchor, err := ensureTreePath(d, projectIndex, path)
	if err != nil {
		return "", err
	}

	scopeEnd := d.blockEnd(anchor)
	keyIndent := indentOf(d.lines[anchor]) + keyOffset
	entryIndent := keyIndent + entryOffset
	entry := pad(entryIndent) + "- from: " + url

	key := d.findKey(anchor+1, scopeEnd, "tree:", keyIndent)
	if key == -1 {
		d.insert(scopeEnd, pad(keyIndent)+"tree:", entry)
		return d.String(), nil
	}
	end := d.keyEnd(key)
	for i := key + 1; i < end; i++ {
		if d.lines[i] == entry {
			return text, nil
		}
	}
	d.insert(end, entry)
	return d.String(), nil
}

// NormalizeSpacing rewrites the document so consecutive projects are
// separated by exactly one blank line. Blank lines elsewhere are
// dropped; non-blank lines are untouched.
func NormalizeSpacing(text string) string {
	d := newDocument(text)
	d.trailing = true

	var out []string
	for _, line := range d.lines {
		if isBlank(line) {
			continue
		}
		if indentOf(line) == 0 && strings.HasPrefix(strings.TrimSpace(line), "- ") && len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, line)
	}
	d.lines = out
	return d.String()
}
