package lang

import "strings"

// pythonLang implements Language for Python. Every module directory is
// marked as a package with an __init__.py that re-imports its siblings.
type pythonLang struct{}

func (pythonLang) Tag() string { return "python" }
func (pythonLang) Ext() string { return ".py" }

func (pythonLang) IsCode(filename string) bool {
	return strings.HasSuffix(filename, ".py")
}

func (pythonLang) Skeleton(_, _ string) string { return "" }

func (pythonLang) MarkerPrefix() string { return "#" }

func (pythonLang) ManifestName(string) string { return "__init__.py" }

func (pythonLang) ManifestOnDemand() bool { return false }

func (pythonLang) DeclLine(d Decl, _ EntryKind) string {
	name := d.Name
	if strings.HasSuffix(name, ".py") {
		name = strings.TrimSuffix(name, ".py")
	}
	return "from ." + name + " import *"
}

func (pythonLang) EntryRole(string, string) (EntryKind, bool) { return 0, false }

func (pythonLang) ProjectManifests(projectName string) []Manifest {
	requirements := "# Add your Python dependencies here\n"
	setup := `from setuptools import setup, find_packages

setup(
    name="` + projectName + `",
    version="0.1.0",
    packages=find_packages(),
    python_requires=">=3.8",
)
`
	return []Manifest{
		{Name: "requirements.txt", Content: requirements},
		{Name: "setup.py", Content: setup},
	}
}
