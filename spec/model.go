// Package spec provides the typed model of a treegen.yml specification:
// parsing, validation, and derivation of the filesystem paths the
// specification claims ownership of.
package spec

import (
	"strings"

	"github.com/c360studio/treegen/lang"
)

// SpecFile is the default specification document name.
const SpecFile = "treegen.yml"

// Config is the root of a parsed specification: a list of projects.
type Config struct {
	Projects []Project
}

// Project is a top-level unit with a single target language and its own
// materialization root.
type Project struct {
	Name string     `yaml:"name"`
	Root bool       `yaml:"root,omitempty"`
	Lang string     `yaml:"lang"`
	File []CodeFile `yaml:"file,omitempty"`
	Tree []Module   `yaml:"tree,omitempty"`
}

// Module is a directory node in the specification tree. A module either
// carries an explicit name, or is a clone target populated from a git
// URL. Clone targets are leaves.
type Module struct {
	Name string     `yaml:"name,omitempty"`
	From string     `yaml:"from,omitempty"`
	Pub  string     `yaml:"pub,omitempty"`
	File []CodeFile `yaml:"file,omitempty"`
	Tree []Module   `yaml:"tree,omitempty"`
}

// CodeFile is a leaf file declaration inside a module or at project
// top level.
type CodeFile struct {
	Name string `yaml:"name"`
	Pub  string `yaml:"pub,omitempty"`
}

// RootProject returns the project marked root, if any.
func (c *Config) RootProject() (*Project, bool) {
	for i := range c.Projects {
		if c.Projects[i].Root {
			return &c.Projects[i], true
		}
	}
	return nil, false
}

// Language resolves the project's language tag.
func (p *Project) Language() (lang.Language, error) {
	return lang.Lookup(p.Lang)
}

// ModuleName resolves the module's effective name: the explicit name, or
// for clone targets the last path segment of the URL with any .git
// suffix stripped.
func (m *Module) ModuleName() string {
	if m.Name != "" {
		return m.Name
	}
	if m.From != "" {
		return repoName(m.From)
	}
	return ""
}

// IsClone reports whether the module is populated by cloning an
// external repository.
func (m *Module) IsClone() bool {
	return m.From != ""
}

// FileName returns the on-disk filename for a declared file: verbatim
// when the name already contains a dot, otherwise with the language's
// default extension appended.
func (f *CodeFile) FileName(l lang.Language) string {
	if strings.Contains(f.Name, ".") {
		return f.Name
	}
	return f.Name + l.Ext()
}

// CloneName extracts the repository name from a git URL, handling both
// HTTPS and SSH forms. It is the directory name a clone-target module
// materializes under.
func CloneName(url string) string {
	return repoName(url)
}

// repoName extracts a repository name from a git URL, handling both
// HTTPS and SSH forms.
func repoName(url string) string {
	url = strings.TrimSuffix(url, ".git")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		url = url[i+1:]
	}
	if i := strings.LastIndex(url, ":"); i >= 0 {
		url = url[i+1:]
	}
	if url == "" {
		return "unknown"
	}
	return url
}
