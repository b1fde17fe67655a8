// Package lang defines the closed set of languages treegen can scaffold
// and the per-language capabilities the generation engine dispatches on:
// default file extension, code-file detection, skeleton content, module
// manifest naming, manifest declarations, and project manifest skeletons.
package lang

import (
	"fmt"
	"sort"
	"strings"
)

// Marker comments delimit the auto-generated block inside Tier-2 module
// manifest files. Text outside the markers is never touched.
const (
	MarkerStart = "start auto exported by treegen."
	MarkerEnd   = "end auto exported by treegen."
)

// EntryKind selects the visibility defaults used when rendering a
// manifest declaration. Only Rust distinguishes the three.
type EntryKind int

// Declaration targets: a per-directory module manifest, a program entry
// file, or a library entry file.
const (
	EntryModule EntryKind = iota
	EntryMain
	EntryLib
)

// Decl describes one sibling (file or subdirectory) to be declared in a
// module manifest block.
type Decl struct {
	// Name is the bare module name as written in the spec.
	Name string
	// FileName is the generated filename, used by languages whose
	// re-exports reference files rather than modules.
	FileName string
	// IsDir reports whether the sibling is a subdirectory.
	IsDir bool
	// Pub is the visibility hint from the spec: "", yes, no, crate, super.
	Pub string
}

// Manifest is a Tier-3 project manifest skeleton: created once at the
// project root if absent, never modified afterwards.
type Manifest struct {
	Name    string
	Content string
}

// Language is the capability set the generation engine needs. The set of
// implementations is closed; Lookup is the only way to obtain one.
type Language interface {
	// Tag returns the spec tag, e.g. "rust".
	Tag() string

	// Ext returns the default extension (with dot) appended to bare
	// file names.
	Ext() string

	// IsCode reports whether a filename is language-native source.
	IsCode(filename string) bool

	// Skeleton returns the Tier-1 content for a newly created code file.
	// dir is the containing directory name.
	Skeleton(dir, filename string) string

	// MarkerPrefix returns the comment leader for marker lines ("//" or
	// "#"), or "" when the language has no module manifest mechanism.
	MarkerPrefix() string

	// ManifestName returns the Tier-2 module manifest filename for a
	// directory, or "" when the directory gets none.
	ManifestName(dir string) string

	// ManifestOnDemand reports whether the module manifest is generated
	// only when the spec explicitly declares a file for that role
	// (TypeScript/JavaScript index files), as opposed to always
	// (Rust mod.rs, Python __init__.py).
	ManifestOnDemand() bool

	// DeclLine renders one declaration line for the marker block.
	DeclLine(d Decl, kind EntryKind) string

	// EntryRole reports whether a declared bare file name plays an entry
	// role in the given directory (Rust's main/lib in src). Entry files
	// receive a maintained declaration block but are never generated
	// unless the spec declares them.
	EntryRole(dir, name string) (EntryKind, bool)

	// ProjectManifests returns the Tier-3 skeletons for a project root.
	ProjectManifests(projectName string) []Manifest
}

// languages is the closed registry, keyed by spec tag.
var languages = map[string]Language{
	"rust":       rustLang{},
	"go":         goLang{},
	"python":     pythonLang{},
	"typescript": tsLang{},
	"javascript": jsLang{},
	"markdown":   genericLang{tag: "markdown", ext: ".md"},
	"bash":       genericLang{tag: "bash", ext: ".txt"},
	"lua":        genericLang{tag: "lua", ext: ".txt"},
	"any":        anyLang{},
}

// Lookup resolves a spec language tag to its Language.
func Lookup(tag string) (Language, error) {
	l, ok := languages[tag]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", tag)
	}
	return l, nil
}

// Supported reports whether a spec language tag is known.
func Supported(tag string) bool {
	_, ok := languages[tag]
	return ok
}

// Tags returns all supported language tags, sorted.
func Tags() []string {
	tags := make([]string, 0, len(languages))
	for t := range languages {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// StripExt removes the language's default extension from a filename, for
// spec entries which store bare names. Filenames with any other
// extension are returned unchanged.
func StripExt(l Language, filename string) string {
	ext := l.Ext()
	if ext != "" && strings.HasSuffix(filename, ext) {
		return strings.TrimSuffix(filename, ext)
	}
	return filename
}

// genericLang covers languages with an extension but no manifest or
// skeleton machinery.
type genericLang struct {
	tag string
	ext string
}

func (g genericLang) Tag() string                       { return g.tag }
func (g genericLang) Ext() string                       { return g.ext }
func (g genericLang) IsCode(string) bool                { return false }
func (g genericLang) Skeleton(string, string) string    { return "" }
func (g genericLang) MarkerPrefix() string              { return "" }
func (g genericLang) ManifestName(string) string        { return "" }
func (g genericLang) ManifestOnDemand() bool            { return false }
func (g genericLang) DeclLine(Decl, EntryKind) string   { return "" }
func (g genericLang) EntryRole(string, string) (EntryKind, bool) { return 0, false }
func (g genericLang) ProjectManifests(string) []Manifest { return nil }
