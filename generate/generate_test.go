package generate

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/treegen/spec"
)

func testGenerator(t *testing.T, cloner Cloner) (*Generator, string) {
	t.Helper()
	base := t.TempDir()
	g := New(Options{
		BaseDir: base,
		Cloner:  cloner,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return g, base
}

func parseSpec(t *testing.T, text string) *spec.Config {
	t.Helper()
	cfg, err := spec.ParseString(text)
	require.NoError(t, err)
	require.NoError(t, spec.Validate(cfg))
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

const rustSpec = `- name: app
  lang: rust
  tree:
    - name: src
      file:
        - name: main
      tree:
        - name: domain
          file:
            - name: model
              pub: crate
            - name: view
`

func TestGenerateRustProject(t *testing.T) {
	g, base := testGenerator(t, nil)
	require.NoError(t, g.Run(context.Background(), parseSpec(t, rustSpec)))

	cargo := readFile(t, filepath.Join(base, "app", "Cargo.toml"))
	require.Contains(t, cargo, `name = "app"`)

	main := readFile(t, filepath.Join(base, "app", "src", "main.rs"))
	require.Contains(t, main, "// start auto exported by treegen.")
	require.Contains(t, main, "mod domain;")
	require.NotContains(t, main, "pub mod domain;")
	require.Contains(t, main, "fn main() {")

	mod := readFile(t, filepath.Join(base, "app", "src", "domain", "mod.rs"))
	require.Contains(t, mod, "pub(crate) mod model;")
	require.Contains(t, mod, "pub mod view;")

	require.Equal(t, "", readFile(t, filepath.Join(base, "app", "src", "domain", "model.rs")))

	// src is fronted by main.rs, never by a mod.rs of its own.
	_, err := os.Stat(filepath.Join(base, "app", "src", "mod.rs"))
	require.True(t, os.IsNotExist(err))
}

func TestExistingCodeFilePreserved(t *testing.T) {
	g, base := testGenerator(t, nil)
	cfg := parseSpec(t, rustSpec)
	require.NoError(t, g.Run(context.Background(), cfg))

	model := filepath.Join(base, "app", "src", "domain", "model.rs")
	body := "pub struct Model {\n    pub id: u64,\n}\n"
	require.NoError(t, os.WriteFile(model, []byte(body), 0o644))

	require.NoError(t, g.Run(context.Background(), cfg))
	require.Equal(t, body, readFile(t, model))
}

func TestManifestPreservesTextOutsideMarkers(t *testing.T) {
	g, base := testGenerator(t, nil)
	cfg := parseSpec(t, rustSpec)
	require.NoError(t, g.Run(context.Background(), cfg))

	mod := filepath.Join(base, "app", "src", "domain", "mod.rs")
	custom := readFile(t, mod) + "\npub fn helper() {}\n"
	require.NoError(t, os.WriteFile(mod, []byte(custom), 0o644))

	require.NoError(t, g.Run(context.Background(), cfg))
	got := readFile(t, mod)
	require.Contains(t, got, "pub fn helper() {}")
	require.Contains(t, got, "pub(crate) mod model;")
}

func TestManifestWithoutMarkersGainsBlock(t *testing.T) {
	g, base := testGenerator(t, nil)
	cfg := parseSpec(t, rustSpec)

	dir := filepath.Join(base, "app", "src", "domain")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	mod := filepath.Join(dir, "mod.rs")
	require.NoError(t, os.WriteFile(mod, []byte("pub fn existing() {}\n"), 0o644))

	require.NoError(t, g.Run(context.Background(), cfg))
	got := readFile(t, mod)
	require.Contains(t, got, "// start auto exported by treegen.")
	require.Contains(t, got, "pub fn existing() {}")
}

func TestRunIsIdempotent(t *testing.T) {
	g, base := testGenerator(t, nil)
	cfg := parseSpec(t, rustSpec)
	require.NoError(t, g.Run(context.Background(), cfg))

	main := filepath.Join(base, "app", "src", "main.rs")
	before := readFile(t, main)
	require.NoError(t, g.Run(context.Background(), cfg))
	require.Equal(t, before, readFile(t, main))
}

func TestEntryFileOnlyWhenDeclared(t *testing.T) {
	g, base := testGenerator(t, nil)
	cfg := parseSpec(t, `- name: lib-only
  lang: rust
  tree:
    - name: src
      tree:
        - name: core
          file:
            - name: engine
`)
	require.NoError(t, g.Run(context.Background(), cfg))

	for _, name := range []string{"main.rs", "lib.rs"} {
		_, err := os.Stat(filepath.Join(base, "lib-only", "src", name))
		require.True(t, os.IsNotExist(err), "%s must not be invented", name)
	}
}

func TestGoModuleGeneration(t *testing.T) {
	g, base := testGenerator(t, nil)
	cfg := parseSpec(t, `- name: svc
  lang: go
  tree:
    - name: http-api
      file:
        - name: server
`)
	require.NoError(t, g.Run(context.Background(), cfg))

	require.Contains(t, readFile(t, filepath.Join(base, "svc", "go.mod")), "module svc")
	require.FileExists(t, filepath.Join(base, "svc", "go.sum"))
	require.Equal(t, "package http_api\n", readFile(t, filepath.Join(base, "svc", "http-api", "server.go")))

	// No entry file was declared, so none is generated.
	_, err := os.Stat(filepath.Join(base, "svc", "main.go"))
	require.True(t, os.IsNotExist(err))
}

func TestOnDemandIndexManifest(t *testing.T) {
	g, base := testGenerator(t, nil)
	cfg := parseSpec(t, `- name: web
  lang: typescript
  tree:
    - name: components
      file:
        - name: index
        - name: button
    - name: util
      file:
        - name: format
`)
	require.NoError(t, g.Run(context.Background(), cfg))

	index := readFile(t, filepath.Join(base, "web", "components", "index.ts"))
	require.Contains(t, index, "export * from './button';")

	_, err := os.Stat(filepath.Join(base, "web", "util", "index.ts"))
	require.True(t, os.IsNotExist(err), "index.ts must only exist where declared")
}

func TestRootProjectUsesBaseDir(t *testing.T) {
	g, base := testGenerator(t, nil)
	cfg := parseSpec(t, `- name: here
  root: true
  lang: python
  tree:
    - name: pkg
      file:
        - name: core
`)
	require.NoError(t, g.Run(context.Background(), cfg))

	require.FileExists(t, filepath.Join(base, "requirements.txt"))
	init := readFile(t, filepath.Join(base, "pkg", "__init__.py"))
	require.Contains(t, init, "# start auto exported by treegen.")
	require.Contains(t, init, "from .core import *")
	_, err := os.Stat(filepath.Join(base, "here"))
	require.True(t, os.IsNotExist(err), "root project must not nest under its name")
}

type stubCloner struct {
	calls []string
	err   error
}

func (s *stubCloner) Clone(_ context.Context, url, dest string) error {
	s.calls = append(s.calls, url)
	if s.err != nil {
		return s.err
	}
	return os.MkdirAll(dest, 0o755)
}

const cloneSpec = `- name: vendor
  lang: any
  tree:
    - from: https://github.com/acme/widgets.git
`

func TestCloneTarget(t *testing.T) {
	cloner := &stubCloner{}
	g, base := testGenerator(t, cloner)
	require.NoError(t, g.Run(context.Background(), parseSpec(t, cloneSpec)))

	require.Equal(t, []string{"https://github.com/acme/widgets.git"}, cloner.calls)
	require.DirExists(t, filepath.Join(base, "vendor", "widgets"))
	require.FileExists(t, filepath.Join(base, "vendor", "README.md"))
}

func TestCloneSkipsExistingDirectory(t *testing.T) {
	cloner := &stubCloner{}
	g, base := testGenerator(t, cloner)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "vendor", "widgets"), 0o755))

	require.NoError(t, g.Run(context.Background(), parseSpec(t, cloneSpec)))
	require.Empty(t, cloner.calls)
}

func TestCloneFailureDoesNotAbortRun(t *testing.T) {
	cloner := &stubCloner{err: os.ErrPermission}
	g, base := testGenerator(t, cloner)

	cfg := parseSpec(t, `- name: vendor
  lang: any
  tree:
    - from: https://github.com/acme/widgets.git
    - name: docs
`)
	require.NoError(t, g.Run(context.Background(), cfg))
	require.DirExists(t, filepath.Join(base, "vendor", "docs"))
}
