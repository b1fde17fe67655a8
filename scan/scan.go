// Package scan walks the filesystem under a specification's projects
// and reports where disk and spec disagree: entries on disk the spec
// does not know about, and spec entries missing from disk. The sync
// workflow is built on these two reports.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/treegen/edit"
	"github.com/c360studio/treegen/spec"
)

// manifestFiles are generated module manifests: never reported as
// unmanaged, since the engine owns them.
var manifestFiles = map[string]bool{
	"mod.rs":      true,
	"__init__.py": true,
	"index.ts":    true,
	"index.js":    true,
}

// defaultExcludedFiles are build and tool artifacts at file level.
var defaultExcludedFiles = map[string]bool{
	spec.SpecFile:         true,
	"Cargo.toml":          true,
	"Cargo.lock":          true,
	"package.json":        true,
	"package-lock.json":   true,
	"yarn.lock":           true,
	"pnpm-lock.yaml":      true,
	"go.mod":              true,
	"go.sum":              true,
	"pyproject.toml":      true,
	"requirements.txt":    true,
	"setup.py":            true,
	"setup.cfg":           true,
	"tsconfig.json":       true,
	"README.md":           true,
	".gitignore":          true,
	".gitattributes":      true,
}

// defaultExcludedDirs are trees that never hold declarable sources.
var defaultExcludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"target":       true,
	"dist":         true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
}

// IsExcludedDir reports whether a directory name is in the built-in
// exclusion table. The watch command uses it to avoid watching build
// and VCS trees.
func IsExcludedDir(name string) bool {
	return defaultExcludedDirs[name]
}

// Options tunes a scan beyond the built-in exclusion tables.
type Options struct {
	// ExcludeDirs and ExcludeFiles extend the built-in name tables.
	ExcludeDirs  []string
	ExcludeFiles []string
	// ExcludePatterns are doublestar globs matched against the path
	// relative to the working directory.
	ExcludePatterns []string
}

// Entry is one on-disk path the specification does not manage. For
// directories, Children carries the whole subtree so it can be grafted
// into the spec in one edit.
type Entry struct {
	// DisplayPath is relative to the working directory; directories
	// carry a trailing slash.
	DisplayPath  string
	ProjectIndex int
	// Segments is the path relative to the project root, one directory
	// or file name per element.
	Segments []string
	IsDir    bool
	Children []edit.Child
}

// Unmanaged reports every file and directory found under the
// specification's projects that the spec does not account for. An
// unmanaged directory is reported once, as a subtree; the walk does not
// descend into clone-target modules or excluded directories.
func Unmanaged(base string, cfg *spec.Config, opts Options) ([]Entry, error) {
	managed, opaque := managedSets(cfg)
	projectDirs := make(map[string]bool)
	for i := range cfg.Projects {
		if !cfg.Projects[i].Root {
			projectDirs[cfg.Projects[i].Name] = true
		}
	}

	var found []Entry
	for pi := range cfg.Projects {
		p := &cfg.Projects[pi]
		root := filepath.Join(base, p.Name)
		prefix := p.Name + "/"
		skipDirs := map[string]bool(nil)
		if p.Root {
			root = base
			prefix = ""
			skipDirs = projectDirs
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		w := &walker{
			opts:     opts,
			managed:  managed,
			opaque:   opaque,
			skipDirs: skipDirs,
		}
		entries, err := w.walk(root, prefix, nil, pi)
		if err != nil {
			return nil, err
		}
		found = append(found, entries...)
	}
	return found, nil
}

// Missing reports every spec-managed path that does not exist on disk,
// in spec order: each directory precedes its contents.
func Missing(base string, cfg *spec.Config) []spec.ManagedPath {
	var missing []spec.ManagedPath
	for _, e := range spec.CollectEntries(cfg) {
		if _, err := os.Stat(filepath.Join(base, filepath.FromSlash(e.DisplayPath))); os.IsNotExist(err) {
			missing = append(missing, e)
		}
	}
	return missing
}

// FilterNested drops missing entries that sit inside another missing
// directory: removing the ancestor's spec entry removes them too.
func FilterNested(missing []spec.ManagedPath) []spec.ManagedPath {
	var kept []spec.ManagedPath
	for _, e := range missing {
		nested := false
		for _, d := range missing {
			if d.IsDir && d.DisplayPath != e.DisplayPath && strings.HasPrefix(e.DisplayPath, d.DisplayPath) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, e)
		}
	}
	return kept
}

type walker struct {
	opts     Options
	managed  map[string]bool
	opaque   map[string]bool
	skipDirs map[string]bool
}

// walk visits one directory level. rel is the display-path prefix for
// entries in this directory; segments the spec path to it.
func (w *walker) walk(dir, rel string, segments []string, pi int) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })

	var found []Entry
	for _, item := range items {
		name := item.Name()
		if w.excluded(name, rel+name, item.IsDir()) {
			continue
		}
		if item.IsDir() && len(segments) == 0 && w.skipDirs[name] {
			continue
		}

		display := rel + name
		childSegments := append(append([]string{}, segments...), name)

		if item.IsDir() {
			display += "/"
			if w.managed[display] {
				if w.opaque[display] {
					continue
				}
				sub, err := w.walk(filepath.Join(dir, name), display, childSegments, pi)
				if err != nil {
					return nil, err
				}
				found = append(found, sub...)
				continue
			}
			children, err := w.collect(filepath.Join(dir, name), display)
			if err != nil {
				return nil, err
			}
			found = append(found, Entry{
				DisplayPath:  display,
				ProjectIndex: pi,
				Segments:     childSegments,
				IsDir:        true,
				Children:     children,
			})
			continue
		}

		if manifestFiles[name] || w.managed[display] {
			continue
		}
		found = append(found, Entry{
			DisplayPath:  display,
			ProjectIndex: pi,
			Segments:     childSegments,
		})
	}
	return found, nil
}

// collect builds the edit subtree for an unmanaged directory, applying
// the same exclusion rules as the walk.
func (w *walker) collect(dir, rel string) ([]edit.Child, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })

	var children []edit.Child
	for _, item := range items {
		name := item.Name()
		if w.excluded(name, rel+name, item.IsDir()) {
			continue
		}
		if item.IsDir() {
			sub, err := w.collect(filepath.Join(dir, name), rel+name+"/")
			if err != nil {
				return nil, err
			}
			children = append(children, edit.Child{Name: name, IsDir: true, Children: sub})
			continue
		}
		if manifestFiles[name] {
			continue
		}
		children = append(children, edit.Child{Name: name})
	}
	return children, nil
}

func (w *walker) excluded(name, rel string, isDir bool) bool {
	if isDir {
		if defaultExcludedDirs[name] {
			return true
		}
		for _, d := range w.opts.ExcludeDirs {
			if d == name {
				return true
			}
		}
	} else {
		if defaultExcludedFiles[name] {
			return true
		}
		for _, f := range w.opts.ExcludeFiles {
			if f == name {
				return true
			}
		}
	}
	for _, pattern := range w.opts.ExcludePatterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func managedSets(cfg *spec.Config) (managed, opaque map[string]bool) {
	managed = make(map[string]bool)
	opaque = make(map[string]bool)
	for _, e := range spec.CollectEntries(cfg) {
		managed[e.DisplayPath] = true
		if e.IsClone {
			opaque[e.DisplayPath] = true
		}
	}
	return managed, opaque
}
