package spec

import (
	"strings"
	"testing"
)

func TestCollectEntriesOrdering(t *testing.T) {
	cfg := mustParse(t, `- name: app
  lang: rust
  file:
    - name: notes.md
  tree:
    - name: src
      file:
        - name: main
      tree:
        - name: domain
          file:
            - name: model
`)
	entries := CollectEntries(cfg)

	var displays []string
	for _, e := range entries {
		displays = append(displays, e.DisplayPath)
	}
	want := []string{
		"app/notes.md",
		"app/src/",
		"app/src/main.rs",
		"app/src/domain/",
		"app/src/domain/model.rs",
	}
	if len(displays) != len(want) {
		t.Fatalf("CollectEntries returned %v, want %v", displays, want)
	}
	for i := range want {
		if displays[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, displays[i], want[i])
		}
	}

	// Every directory entry precedes everything it prefixes.
	for i, e := range entries {
		if !e.IsDir {
			continue
		}
		for j := 0; j < i; j++ {
			if strings.HasPrefix(entries[j].DisplayPath, e.DisplayPath) {
				t.Errorf("%q appears before its directory %q", entries[j].DisplayPath, e.DisplayPath)
			}
		}
	}
}

func TestCollectEntriesRootProject(t *testing.T) {
	cfg := mustParse(t, `- name: top
  root: true
  lang: go
  tree:
    - name: pkg
      file:
        - name: core
`)
	entries := CollectEntries(cfg)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", entries)
	}
	if entries[0].DisplayPath != "pkg/" || entries[1].DisplayPath != "pkg/core.go" {
		t.Errorf("root project paths must not be prefixed: %v", entries)
	}
}

func TestCollectEntriesCloneTarget(t *testing.T) {
	cfg := mustParse(t, `- name: vendor
  lang: any
  tree:
    - from: https://github.com/acme/widgets.git
`)
	entries := CollectEntries(cfg)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %v", entries)
	}
	e := entries[0]
	if e.DisplayPath != "vendor/widgets/" || !e.IsDir || !e.IsClone {
		t.Errorf("unexpected clone entry: %+v", e)
	}
}

func TestCollectFilesFiltersDirectories(t *testing.T) {
	cfg := mustParse(t, `- name: app
  lang: rust
  tree:
    - name: src
      file:
        - name: main
`)
	files := CollectFiles(cfg)
	if len(files) != 1 || files[0].DisplayPath != "app/src/main.rs" {
		t.Errorf("CollectFiles = %v", files)
	}
}

func TestManagedPathMetadata(t *testing.T) {
	cfg := mustParse(t, `- name: app
  lang: rust
  file:
    - name: readme.md
  tree:
    - name: src
      tree:
        - name: domain
          file:
            - name: model
`)
	entries := CollectEntries(cfg)

	top := entries[0]
	if !top.IsProjectLevel || top.Name != "readme.md" || len(top.ModulePath) != 0 {
		t.Errorf("unexpected top-level file metadata: %+v", top)
	}

	var model ManagedPath
	for _, e := range entries {
		if e.Name == "model" {
			model = e
		}
	}
	if model.DisplayPath != "app/src/domain/model.rs" {
		t.Fatalf("model entry not found: %v", entries)
	}
	if strings.Join(model.ModulePath, ".") != "src.domain" {
		t.Errorf("model module path = %v, want [src domain]", model.ModulePath)
	}
}
