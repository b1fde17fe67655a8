package spec

import (
	"fmt"
	"strings"

	"github.com/c360studio/treegen/lang"
)

// ValidationError is a single rule violation, located by a path
// expression into the specification, e.g. "projects[1].tree[0].from".
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error at %s: %s", e.Path, e.Message)
}

// ValidationErrors aggregates every violation found in one pass.
// Callers must not proceed to generation or editing when it is
// non-empty.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "specification validation failed:\n" + strings.Join(msgs, "\n")
}

// Validate checks the structural and semantic rules over a parsed
// specification, collecting all violations rather than stopping at the
// first. A nil return means the specification is safe to generate from
// and edit against.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if len(cfg.Projects) == 0 {
		errs = append(errs, &ValidationError{
			Path:    "projects",
			Message: "specification must contain at least one project",
		})
		return errs
	}

	for i := range cfg.Projects {
		errs = append(errs, validateProject(&cfg.Projects[i], fmt.Sprintf("projects[%d]", i))...)
	}
	errs = append(errs, validateRoots(cfg)...)
	errs = append(errs, validateProjectNames(cfg)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateProject(p *Project, path string) ValidationErrors {
	var errs ValidationErrors

	if p.Name == "" {
		errs = append(errs, &ValidationError{
			Path:    path + ".name",
			Message: "project name cannot be empty",
		})
	}
	if p.Lang == "" {
		errs = append(errs, &ValidationError{
			Path:    path + ".lang",
			Message: "project language cannot be empty",
		})
	} else if !lang.Supported(p.Lang) {
		errs = append(errs, &ValidationError{
			Path:    path + ".lang",
			Message: fmt.Sprintf("unsupported language: %s", p.Lang),
		})
	}

	for i := range p.Tree {
		errs = append(errs, validateModule(&p.Tree[i], fmt.Sprintf("%s.tree[%d]", path, i), p.Lang)...)
	}
	return errs
}

func validateModule(m *Module, path, language string) ValidationErrors {
	var errs ValidationErrors

	if m.Name == "" && m.From == "" {
		errs = append(errs, &ValidationError{
			Path:    path,
			Message: "module must have either 'name' or 'from'",
		})
	}
	if name := m.ModuleName(); name != "" {
		if strings.ContainsAny(name, `/\`) {
			errs = append(errs, &ValidationError{
				Path:    path + ".name",
				Message: "module name cannot contain path separators",
			})
		}
	} else if m.Name == "" && m.From != "" {
		errs = append(errs, &ValidationError{
			Path:    path + ".from",
			Message: "cannot derive a module name from the clone URL",
		})
	}

	if m.From != "" {
		if language != "any" {
			errs = append(errs, &ValidationError{
				Path:    path + ".from",
				Message: fmt.Sprintf("clone-target modules require 'lang: any' (current: %s)", language),
			})
		}
		if len(m.Tree) > 0 {
			errs = append(errs, &ValidationError{
				Path:    path + ".tree",
				Message: "clone-target module cannot have 'tree'",
			})
		}
		if len(m.File) > 0 {
			errs = append(errs, &ValidationError{
				Path:    path + ".file",
				Message: "clone-target module cannot have 'file'",
			})
		}
	}

	for i := range m.Tree {
		errs = append(errs, validateModule(&m.Tree[i], fmt.Sprintf("%s.tree[%d]", path, i), language)...)
	}
	return errs
}

func validateRoots(cfg *Config) ValidationErrors {
	roots := 0
	for i := range cfg.Projects {
		if cfg.Projects[i].Root {
			roots++
		}
	}
	if roots > 1 {
		return ValidationErrors{{
			Path:    "projects",
			Message: "only one project can be marked as root",
		}}
	}
	return nil
}

func validateProjectNames(cfg *Config) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)
	for i := range cfg.Projects {
		name := cfg.Projects[i].Name
		if name == "" {
			continue
		}
		if seen[name] {
			errs = append(errs, &ValidationError{
				Path:    fmt.Sprintf("projects[%d].name", i),
				Message: fmt.Sprintf("duplicate project name: %s", name),
			})
		}
		seen[name] = true
	}
	return errs
}
