package lang

import "strings"

// tsLang implements Language for TypeScript. An index.ts barrel file is
// maintained per directory, but only where the spec declares one.
type tsLang struct{}

func (tsLang) Tag() string { return "typescript" }
func (tsLang) Ext() string { return ".ts" }

func (tsLang) IsCode(filename string) bool {
	return strings.HasSuffix(filename, ".ts") || strings.HasSuffix(filename, ".tsx")
}

func (tsLang) Skeleton(_, _ string) string { return "" }

func (tsLang) MarkerPrefix() string { return "//" }

func (tsLang) ManifestName(string) string { return "index.ts" }

func (tsLang) ManifestOnDemand() bool { return true }

func (tsLang) DeclLine(d Decl, _ EntryKind) string {
	return "export * from './" + moduleSpecifier(d.Name) + "';"
}

func (tsLang) EntryRole(string, string) (EntryKind, bool) { return 0, false }

func (tsLang) ProjectManifests(projectName string) []Manifest {
	pkg := `{
  "name": "` + projectName + `",
  "version": "0.1.0",
  "main": "dist/index.js",
  "scripts": {
    "build": "tsc",
    "start": "node dist/index.js"
  },
  "devDependencies": {
    "typescript": "^5.0.0",
    "@types/node": "^18.0.0"
  }
}
`
	tsconfig := `{
  "compilerOptions": {
    "target": "ES2020",
    "module": "commonjs",
    "outDir": "./dist",
    "rootDir": "./src",
    "strict": true,
    "esModuleInterop": true,
    "skipLibCheck": true
  },
  "include": ["src/**/*"],
  "exclude": ["node_modules", "dist"]
}
`
	return []Manifest{
		{Name: "package.json", Content: pkg},
		{Name: "tsconfig.json", Content: tsconfig},
	}
}

// moduleSpecifier strips a script extension from a declared name so the
// re-export references the module, not the file.
func moduleSpecifier(name string) string {
	for _, ext := range []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".vue"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
