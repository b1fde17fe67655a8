package lang

// anyLang implements Language for the "any" sentinel: no extension
// defaulting, no module manifests, no skeletons. The generation engine
// creates exactly the files the spec names, plus an empty README.md at
// the project root. Clone-target modules are only legal under this
// language.
type anyLang struct{}

func (anyLang) Tag() string                              { return "any" }
func (anyLang) Ext() string                              { return "" }
func (anyLang) IsCode(string) bool                       { return false }
func (anyLang) Skeleton(string, string) string           { return "" }
func (anyLang) MarkerPrefix() string                     { return "" }
func (anyLang) ManifestName(string) string               { return "" }
func (anyLang) ManifestOnDemand() bool                   { return false }
func (anyLang) DeclLine(Decl, EntryKind) string          { return "" }
func (anyLang) EntryRole(string, string) (EntryKind, bool) { return 0, false }

func (anyLang) ProjectManifests(string) []Manifest {
	return []Manifest{{Name: "README.md", Content: ""}}
}
