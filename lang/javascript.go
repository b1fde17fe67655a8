package lang

import "strings"

// jsLang implements Language for JavaScript. ES module re-exports must
// reference files, so declarations carry explicit .js paths.
type jsLang struct{}

func (jsLang) Tag() string { return "javascript" }
func (jsLang) Ext() string { return ".js" }

func (jsLang) IsCode(filename string) bool {
	return strings.HasSuffix(filename, ".js") ||
		strings.HasSuffix(filename, ".jsx") ||
		strings.HasSuffix(filename, ".mjs")
}

func (jsLang) Skeleton(_, _ string) string { return "" }

func (jsLang) MarkerPrefix() string { return "//" }

func (jsLang) ManifestName(string) string { return "index.js" }

func (jsLang) ManifestOnDemand() bool { return true }

func (jsLang) DeclLine(d Decl, _ EntryKind) string {
	if d.IsDir {
		return "export * from './" + d.Name + "/index.js';"
	}
	if d.FileName != "" {
		return "export * from './" + d.FileName + "';"
	}
	return "export * from './" + d.Name + ".js';"
}

func (jsLang) EntryRole(string, string) (EntryKind, bool) { return 0, false }

func (jsLang) ProjectManifests(projectName string) []Manifest {
	pkg := `{
  "name": "` + projectName + `",
  "version": "0.1.0",
  "main": "index.js",
  "type": "module",
  "scripts": {
    "start": "node index.js"
  }
}
`
	return []Manifest{{Name: "package.json", Content: pkg}}
}
