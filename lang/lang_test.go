package lang

import "testing"

func TestLookup(t *testing.T) {
	for _, tag := range []string{"rust", "go", "python", "typescript", "javascript", "markdown", "bash", "lua", "any"} {
		if _, err := Lookup(tag); err != nil {
			t.Errorf("Lookup(%q) error = %v", tag, err)
		}
	}
	if _, err := Lookup("cobol"); err == nil {
		t.Error("Lookup(cobol) should fail")
	}
}

func TestRustDeclVisibility(t *testing.T) {
	rust, _ := Lookup("rust")
	tests := []struct {
		pub  string
		kind EntryKind
		want string
	}{
		{"yes", EntryModule, "pub mod x;"},
		{"no", EntryModule, "mod x;"},
		{"crate", EntryModule, "pub(crate) mod x;"},
		{"super", EntryModule, "pub(super) mod x;"},
		{"", EntryModule, "pub mod x;"},
		{"", EntryMain, "mod x;"},
		{"", EntryLib, "pub mod x;"},
	}
	for _, tt := range tests {
		got := rust.DeclLine(Decl{Name: "x", Pub: tt.pub}, tt.kind)
		if got != tt.want {
			t.Errorf("DeclLine(pub=%q, kind=%d) = %q, want %q", tt.pub, tt.kind, got, tt.want)
		}
	}
}

func TestRustManifestPlacement(t *testing.T) {
	rust, _ := Lookup("rust")
	if got := rust.ManifestName("domain"); got != "mod.rs" {
		t.Errorf("ManifestName(domain) = %q", got)
	}
	if got := rust.ManifestName("src"); got != "" {
		t.Errorf("src must not get a mod.rs, got %q", got)
	}
	if kind, ok := rust.EntryRole("src", "main"); !ok || kind != EntryMain {
		t.Errorf("EntryRole(src, main) = %v, %v", kind, ok)
	}
	if _, ok := rust.EntryRole("domain", "main"); ok {
		t.Error("main outside src must not be an entry file")
	}
}

func TestGoSkeleton(t *testing.T) {
	g, _ := Lookup("go")
	if got := g.Skeleton("http-api", "server.go"); got != "package http_api\n" {
		t.Errorf("Skeleton = %q", got)
	}
	if got := g.Skeleton("cmd", "main.go"); got != "package main\n\nfunc main() {\n}\n" {
		t.Errorf("main skeleton = %q", got)
	}
}

func TestPythonDecl(t *testing.T) {
	py, _ := Lookup("python")
	if got := py.DeclLine(Decl{Name: "models"}, EntryModule); got != "from .models import *" {
		t.Errorf("DeclLine = %q", got)
	}
	if got := py.DeclLine(Decl{Name: "utils.py"}, EntryModule); got != "from .utils import *" {
		t.Errorf("DeclLine with extension = %q", got)
	}
}

func TestScriptDecls(t *testing.T) {
	ts, _ := Lookup("typescript")
	if got := ts.DeclLine(Decl{Name: "button"}, EntryModule); got != "export * from './button';" {
		t.Errorf("ts DeclLine = %q", got)
	}
	if got := ts.DeclLine(Decl{Name: "app.tsx"}, EntryModule); got != "export * from './app';" {
		t.Errorf("ts DeclLine tsx = %q", got)
	}

	js, _ := Lookup("javascript")
	if got := js.DeclLine(Decl{Name: "widgets", IsDir: true}, EntryModule); got != "export * from './widgets/index.js';" {
		t.Errorf("js dir DeclLine = %q", got)
	}
	if got := js.DeclLine(Decl{Name: "api", FileName: "api.js"}, EntryModule); got != "export * from './api.js';" {
		t.Errorf("js file DeclLine = %q", got)
	}
}

func TestStripExt(t *testing.T) {
	rust, _ := Lookup("rust")
	if got := StripExt(rust, "model.rs"); got != "model" {
		t.Errorf("StripExt = %q", got)
	}
	if got := StripExt(rust, "notes.md"); got != "notes.md" {
		t.Errorf("foreign extension must survive, got %q", got)
	}
}
