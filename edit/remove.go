package edit

import (
	"github.com/c360studio/treegen/spec"
)

// Remove deletes the specification entry behind a managed path and
// returns the rewritten document text. Removing a directory entry drops
// the module's whole block; removing a file drops its list entry plus
// any attribute continuation lines. Section keys left without entries
// are cleaned up afterwards. Removing an entry that is already absent
// returns the text unchanged.
func Remove(text string, target spec.ManagedPath) (string, error) {
	d := newDocument(text)

	if target.IsDir {
		if err := removeModule(d, target); err != nil {
			return handleMissing(text, err)
		}
		d.dropEmptySections("tree:")
		return d.String(), nil
	}

	if err := removeFile(d, target); err != nil {
		return handleMissing(text, err)
	}
	d.dropEmptySections("file:")
	return d.String(), nil
}

// handleMissing turns a NotFoundError into an idempotent no-op; any
// other error propagates.
func handleMissing(text string, err error) (string, error) {
	if _, ok := err.(*NotFoundError); ok {
		return text, nil
	}
	return "", err
}

func removeModule(d *document, target spec.ManagedPath) error {
	path := append(append([]string{}, target.ModulePath...), target.Name)
	anchor, err := d.moduleAnchor(target.ProjectIndex, path)
	if err != nil {
		return err
	}
	d.remove(anchor, d.blockEnd(anchor))
	return nil
}

func removeFile(d *document, target spec.ManagedPath) error {
	var anchor int
	var err error
	if target.IsProjectLevel {
		anchor, err = d.projectStart(target.ProjectIndex)
	} else {
		anchor, err = d.moduleAnchor(target.ProjectIndex, target.ModulePath)
	}
	if err != nil {
		return err
	}

	scopeEnd := d.blockEnd(anchor)
	keyIndent := indentOf(d.lines[anchor]) + keyOffset
	key := d.findKey(anchor+1, scopeEnd, "file:", keyIndent)
	if key == -1 {
		return &NotFoundError{Segment: target.Name}
	}
	entry := d.findEntry(key+1, d.keyEnd(key), keyIndent+entryOffset, target.Name)
	if entry == -1 {
		return &NotFoundError{Segment: target.Name}
	}
	d.remove(entry, d.blockEnd(entry))
	return nil
}
