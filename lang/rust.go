package lang

import "strings"

// rustLang implements Language for Rust. Every module directory except
// src carries a mod.rs manifest; src is fronted by main.rs or lib.rs,
// generated only when the spec declares a file for that role.
type rustLang struct{}

func (rustLang) Tag() string { return "rust" }
func (rustLang) Ext() string { return ".rs" }

func (rustLang) IsCode(filename string) bool {
	return strings.HasSuffix(filename, ".rs")
}

func (rustLang) Skeleton(dir, filename string) string {
	if dir == "src" && filename == "main.rs" {
		return "fn main() {\n}\n"
	}
	return ""
}

func (rustLang) MarkerPrefix() string { return "//" }

// ManifestName returns mod.rs for every directory except src, whose
// manifest role is filled by main.rs or lib.rs instead.
func (rustLang) ManifestName(dir string) string {
	if dir == "src" {
		return ""
	}
	return "mod.rs"
}

func (rustLang) ManifestOnDemand() bool { return false }

func (rustLang) DeclLine(d Decl, kind EntryKind) string {
	return rustVisibility(d.Pub, kind) + "mod " + d.Name + ";"
}

// EntryRole marks main and lib in src as entry files: they carry the
// module declarations src would otherwise keep in a mod.rs.
func (rustLang) EntryRole(dir, name string) (EntryKind, bool) {
	if dir != "src" {
		return 0, false
	}
	switch name {
	case "main":
		return EntryMain, true
	case "lib":
		return EntryLib, true
	}
	return 0, false
}

func (rustLang) ProjectManifests(projectName string) []Manifest {
	content := "[package]\nname = \"" + projectName + "\"\nversion = \"0.1.0\"\nedition = \"2021\"\n\n[dependencies]\n"
	return []Manifest{{Name: "Cargo.toml", Content: content}}
}

// rustVisibility maps a spec pub hint to a declaration prefix. main.rs
// declarations default to private; mod.rs and lib.rs default to pub.
func rustVisibility(pub string, kind EntryKind) string {
	switch pub {
	case "yes":
		return "pub "
	case "no":
		return ""
	case "crate":
		return "pub(crate) "
	case "super":
		return "pub(super) "
	case "":
		if kind == EntryMain {
			return ""
		}
		return "pub "
	default:
		return "pub "
	}
}
