package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/treegen/edit"
	"github.com/c360studio/treegen/spec"
)

func parseSpec(t *testing.T, text string) *spec.Config {
	t.Helper()
	cfg, err := spec.ParseString(text)
	require.NoError(t, err)
	return cfg
}

func touch(t *testing.T, base string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(base, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
}

func mkdirs(t *testing.T, base string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(base, filepath.FromSlash(d)), 0o755))
	}
}

const appSpec = `- name: app
  lang: rust
  tree:
    - name: src
      file:
        - name: main
      tree:
        - name: domain
          file:
            - name: model
`

func TestUnmanagedReportsNewFiles(t *testing.T) {
	base := t.TempDir()
	touch(t, base,
		"app/src/main.rs",
		"app/src/domain/model.rs",
		"app/src/domain/extra.rs",
	)

	found, err := Unmanaged(base, parseSpec(t, appSpec), Options{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "app/src/domain/extra.rs", found[0].DisplayPath)
	require.Equal(t, []string{"src", "domain", "extra.rs"}, found[0].Segments)
	require.False(t, found[0].IsDir)
}

func TestUnmanagedReportsDirectoryAsSubtree(t *testing.T) {
	base := t.TempDir()
	touch(t, base,
		"app/src/main.rs",
		"app/src/infra/db.rs",
		"app/src/infra/cache/redis.rs",
	)

	found, err := Unmanaged(base, parseSpec(t, appSpec), Options{})
	require.NoError(t, err)
	require.Len(t, found, 1)

	e := found[0]
	require.Equal(t, "app/src/infra/", e.DisplayPath)
	require.True(t, e.IsDir)
	require.Equal(t, []edit.Child{
		{Name: "cache", IsDir: true, Children: []edit.Child{{Name: "redis.rs"}}},
		{Name: "db.rs"},
	}, e.Children)
}

func TestUnmanagedSkipsArtifactsAndManifests(t *testing.T) {
	base := t.TempDir()
	touch(t, base,
		"app/Cargo.toml",
		"app/Cargo.lock",
		"app/src/mod.rs",
		"app/src/domain/mod.rs",
		"app/target/debug/app.d",
		"app/.git/HEAD",
	)

	found, err := Unmanaged(base, parseSpec(t, appSpec), Options{})
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestUnmanagedHonorsOptions(t *testing.T) {
	base := t.TempDir()
	touch(t, base,
		"app/src/gen_types.rs",
		"app/src/notes.txt",
		"app/scratch/junk.rs",
	)

	found, err := Unmanaged(base, parseSpec(t, appSpec), Options{
		ExcludeDirs:     []string{"scratch"},
		ExcludeFiles:    []string{"notes.txt"},
		ExcludePatterns: []string{"**/gen_*.rs"},
	})
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestUnmanagedDoesNotEnterCloneTargets(t *testing.T) {
	base := t.TempDir()
	touch(t, base, "vendor/widgets/lots/of/code.c")

	cfg := parseSpec(t, `- name: vendor
  lang: any
  tree:
    - from: https://github.com/acme/widgets.git
`)
	found, err := Unmanaged(base, cfg, Options{})
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestRootProjectSkipsSiblingProjects(t *testing.T) {
	base := t.TempDir()
	touch(t, base,
		"stray.py",
		"app/src/whatever.rs",
	)

	cfg := parseSpec(t, `- name: top
  root: true
  lang: python

`+appSpec)
	found, err := Unmanaged(base, cfg, Options{})
	require.NoError(t, err)

	var displays []string
	for _, e := range found {
		displays = append(displays, e.DisplayPath)
	}
	require.Contains(t, displays, "stray.py")
	require.Contains(t, displays, "app/src/whatever.rs")
	// app must be reported through its own project, not as a stray
	// directory of the root project.
	require.NotContains(t, displays, "app/")
}

func TestMissingAndFilterNested(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "app/src")
	touch(t, base, "app/src/main.rs")

	cfg := parseSpec(t, appSpec)
	missing := Missing(base, cfg)

	var displays []string
	for _, e := range missing {
		displays = append(displays, e.DisplayPath)
	}
	require.Equal(t, []string{"app/src/domain/", "app/src/domain/model.rs"}, displays)

	kept := FilterNested(missing)
	require.Len(t, kept, 1)
	require.Equal(t, "app/src/domain/", kept[0].DisplayPath)
}
