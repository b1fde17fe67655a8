package lang

import "strings"

// goLang implements Language for Go. Go has no per-directory manifest
// mechanism; package membership is declared inside each file, so new
// code files get a package clause derived from their directory.
type goLang struct{}

func (goLang) Tag() string { return "go" }
func (goLang) Ext() string { return ".go" }

func (goLang) IsCode(filename string) bool {
	return strings.HasSuffix(filename, ".go")
}

func (goLang) Skeleton(dir, filename string) string {
	if !strings.HasSuffix(filename, ".go") {
		return ""
	}
	if strings.Contains(filename, "main") {
		return "package main\n\nfunc main() {\n}\n"
	}
	return "package " + goPackageName(dir) + "\n"
}

func (goLang) MarkerPrefix() string            { return "" }
func (goLang) ManifestName(string) string      { return "" }
func (goLang) ManifestOnDemand() bool          { return false }
func (goLang) DeclLine(Decl, EntryKind) string { return "" }

func (goLang) EntryRole(string, string) (EntryKind, bool) { return 0, false }

func (goLang) ProjectManifests(projectName string) []Manifest {
	return []Manifest{
		{Name: "go.mod", Content: "module " + goPackageName(projectName) + "\n\ngo 1.22\n"},
		{Name: "go.sum", Content: ""},
	}
}

// goPackageName sanitizes a directory name into a valid package name.
func goPackageName(dir string) string {
	return strings.ToLower(strings.ReplaceAll(dir, "-", "_"))
}
