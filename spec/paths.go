package spec

import "github.com/c360studio/treegen/lang"

// ManagedPath is one filesystem path the specification claims ownership
// of. It is a derived projection: recomputed from the model on demand
// and never mutated directly.
type ManagedPath struct {
	// DisplayPath is the path relative to the working directory;
	// directories carry a trailing slash.
	DisplayPath string
	// ProjectIndex is the owning project's position in the spec.
	ProjectIndex int
	// Name is the file or module name as written in the spec.
	Name string
	// ModulePath is the module-name path from the project root to the
	// entry's parent.
	ModulePath []string
	// IsProjectLevel marks project top-level files (outside any tree).
	IsProjectLevel bool
	// IsDir marks module directory entries.
	IsDir bool
	// IsClone marks directories populated by cloning; their contents are
	// owned by the remote repository, not the specification.
	IsClone bool
}

// CollectEntries derives every file and directory path implied by the
// specification. Ordering is load-bearing: per project, top-level files
// come first, then a pre-order walk of the tree in which each module's
// directory entry precedes its files, which precede its children.
func CollectEntries(cfg *Config) []ManagedPath {
	var entries []ManagedPath

	for pi := range cfg.Projects {
		p := &cfg.Projects[pi]
		l, err := p.Language()
		if err != nil {
			continue
		}

		base := ""
		if !p.Root {
			base = p.Name + "/"
		}

		for fi := range p.File {
			f := &p.File[fi]
			entries = append(entries, ManagedPath{
				DisplayPath:    base + f.FileName(l),
				ProjectIndex:   pi,
				Name:           f.Name,
				IsProjectLevel: true,
			})
		}

		for mi := range p.Tree {
			entries = collectModule(entries, base, &p.Tree[mi], l, pi, nil)
		}
	}

	return entries
}

// CollectFiles derives only the file entries.
func CollectFiles(cfg *Config) []ManagedPath {
	all := CollectEntries(cfg)
	files := all[:0:0]
	for _, e := range all {
		if !e.IsDir {
			files = append(files, e)
		}
	}
	return files
}

func collectModule(entries []ManagedPath, base string, m *Module, l lang.Language, pi int, parents []string) []ManagedPath {
	name := m.ModuleName()
	path := append(append([]string{}, parents...), name)
	dir := base
	for _, seg := range path {
		dir += seg + "/"
	}

	entries = append(entries, ManagedPath{
		DisplayPath:  dir,
		ProjectIndex: pi,
		Name:         name,
		ModulePath:   parents,
		IsDir:        true,
		IsClone:      m.IsClone(),
	})

	for fi := range m.File {
		f := &m.File[fi]
		entries = append(entries, ManagedPath{
			DisplayPath:  dir + f.FileName(l),
			ProjectIndex: pi,
			Name:         f.Name,
			ModulePath:   path,
		})
	}

	for mi := range m.Tree {
		entries = collectModule(entries, base, &m.Tree[mi], l, pi, path)
	}

	return entries
}
