// Package generate materializes a parsed specification onto the
// filesystem. Files fall into three protection tiers: declared code
// files are created once and never overwritten, module manifests are
// regenerated only inside their marker block, and project manifests are
// created once at the project root. Everything a user writes is
// preserved.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/c360studio/treegen/lang"
	"github.com/c360studio/treegen/spec"
)

// Cloner populates a clone-target module directory from a git URL.
type Cloner interface {
	Clone(ctx context.Context, url, dest string) error
}

// Error wraps a generation failure with the path being materialized.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options configures a Generator.
type Options struct {
	// BaseDir is the working directory specification paths are resolved
	// against. Defaults to ".".
	BaseDir string
	// Cloner handles clone-target modules. When nil, clone targets are
	// skipped with a warning.
	Cloner Cloner
	// Logger receives per-path progress events. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Generator materializes specifications. Safe to reuse across runs;
// each Run is tagged with its own operation id in the logs.
type Generator struct {
	base   string
	cloner Cloner
	log    *slog.Logger
}

// New builds a Generator from opts.
func New(opts Options) *Generator {
	base := opts.BaseDir
	if base == "" {
		base = "."
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{base: base, cloner: opts.Cloner, log: logger}
}

// Run materializes every project in the specification. The first
// filesystem failure aborts the run; clone failures are logged and
// skipped so one unreachable remote cannot wedge the rest of the tree.
func (g *Generator) Run(ctx context.Context, cfg *spec.Config) error {
	log := g.log.With("run_id", uuid.NewString())
	for pi := range cfg.Projects {
		if err := g.project(ctx, log, &cfg.Projects[pi]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) project(ctx context.Context, log *slog.Logger, p *spec.Project) error {
	l, err := p.Language()
	if err != nil {
		return &Error{Path: p.Name, Err: err}
	}

	dir := g.base
	dirName := p.Name
	if !p.Root {
		dir = filepath.Join(g.base, p.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &Error{Path: dir, Err: err}
		}
	} else if abs, err := filepath.Abs(dir); err == nil {
		dirName = filepath.Base(abs)
	}
	log = log.With("project", p.Name)

	for _, m := range l.ProjectManifests(p.Name) {
		path := filepath.Join(dir, m.Name)
		created, err := writeIfAbsent(path, m.Content)
		if err != nil {
			return &Error{Path: path, Err: err}
		}
		if created {
			log.Info("created project manifest", "path", path)
		}
	}

	for fi := range p.File {
		f := &p.File[fi]
		if err := g.codeFile(log, dir, dirName, f, l); err != nil {
			return err
		}
	}

	for mi := range p.Tree {
		if err := g.module(ctx, log, dir, &p.Tree[mi], l); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) module(ctx context.Context, log *slog.Logger, parentDir string, m *spec.Module, l lang.Language) error {
	if m.IsClone() {
		return g.clone(ctx, log, parentDir, m)
	}

	dir := filepath.Join(parentDir, m.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Path: dir, Err: err}
	}

	manifest := manifestName(m, l)
	for fi := range m.File {
		f := &m.File[fi]
		if f.FileName(l) == manifest {
			continue
		}
		if kind, ok := l.EntryRole(m.Name, f.Name); ok {
			if err := g.markerFile(log, dir, f.FileName(l), l, declsFor(m, l, f.Name), kind, l.Skeleton(m.Name, f.FileName(l))); err != nil {
				return err
			}
			continue
		}
		if err := g.codeFile(log, dir, m.Name, f, l); err != nil {
			return err
		}
	}

	if manifest != "" {
		if err := g.markerFile(log, dir, manifest, l, declsFor(m, l, ""), lang.EntryModule, ""); err != nil {
			return err
		}
	}

	for mi := range m.Tree {
		if err := g.module(ctx, log, dir, &m.Tree[mi], l); err != nil {
			return err
		}
	}
	return nil
}

// clone populates a clone-target module. An existing directory is left
// alone, and clone failures do not abort the run.
func (g *Generator) clone(ctx context.Context, log *slog.Logger, parentDir string, m *spec.Module) error {
	dest := filepath.Join(parentDir, m.ModuleName())
	if _, err := os.Stat(dest); err == nil {
		log.Warn("clone target already exists, skipping", "path", dest, "url", m.From)
		return nil
	}
	if g.cloner == nil {
		log.Warn("no cloner configured, skipping clone target", "path", dest, "url", m.From)
		return nil
	}
	if err := g.cloner.Clone(ctx, m.From, dest); err != nil {
		log.Error("clone failed, continuing", "path", dest, "url", m.From, "error", err)
		return nil
	}
	log.Info("cloned module", "path", dest, "url", m.From)
	return nil
}

// codeFile creates a declared file with its skeleton content unless it
// already exists.
func (g *Generator) codeFile(log *slog.Logger, dir, dirName string, f *spec.CodeFile, l lang.Language) error {
	name := f.FileName(l)
	path := filepath.Join(dir, name)
	created, err := writeIfAbsent(path, l.Skeleton(dirName, name))
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	if created {
		log.Info("created file", "path", path)
	} else {
		log.Debug("file exists, preserved", "path", path)
	}
	return nil
}

// markerFile creates or refreshes a file that carries a maintained
// declaration block. New files get the block plus any skeleton suffix;
// existing files only have the text between the markers replaced.
func (g *Generator) markerFile(log *slog.Logger, dir, name string, l lang.Language, decls []lang.Decl, kind lang.EntryKind, suffix string) error {
	path := filepath.Join(dir, name)
	lines := make([]string, 0, len(decls))
	for _, d := range decls {
		lines = append(lines, l.DeclLine(d, kind))
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		content := markerBlock(l.MarkerPrefix(), lines)
		if suffix != "" {
			content += "\n" + suffix
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return &Error{Path: path, Err: err}
		}
		log.Info("created manifest", "path", path)
		return nil
	}
	if err != nil {
		return &Error{Path: path, Err: err}
	}

	updated := updateMarkers(string(data), l.MarkerPrefix(), lines)
	if updated == string(data) {
		return nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return &Error{Path: path, Err: err}
	}
	log.Info("updated manifest block", "path", path)
	return nil
}

// manifestName resolves the module manifest the directory should carry,
// honoring on-demand languages where the manifest only exists when the
// spec declares it.
func manifestName(m *spec.Module, l lang.Language) string {
	name := l.ManifestName(m.Name)
	if name == "" {
		return ""
	}
	if l.ManifestOnDemand() {
		for fi := range m.File {
			if m.File[fi].FileName(l) == name {
				return name
			}
		}
		return ""
	}
	return name
}

// declsFor builds the declaration list for a module's manifest or entry
// file: sibling files first, subdirectories after. Manifest files and
// entry files never declare themselves or each other.
func declsFor(m *spec.Module, l lang.Language, self string) []lang.Decl {
	manifest := l.ManifestName(m.Name)
	var decls []lang.Decl
	for fi := range m.File {
		f := &m.File[fi]
		if f.Name == self || f.FileName(l) == manifest {
			continue
		}
		if _, ok := l.EntryRole(m.Name, f.Name); ok {
			continue
		}
		decls = append(decls, lang.Decl{Name: f.Name, FileName: f.FileName(l), Pub: f.Pub})
	}
	for mi := range m.Tree {
		c := &m.Tree[mi]
		decls = append(decls, lang.Decl{Name: c.ModuleName(), IsDir: true, Pub: c.Pub})
	}
	return decls
}

// writeIfAbsent creates path with content unless it already exists.
func writeIfAbsent(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
