package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/treegen/edit"
	"github.com/c360studio/treegen/lang"
	"github.com/c360studio/treegen/spec"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init [language]",
		Short: "Create a specification, or append a new project to it",
		Long: `Creates a ` + "`treegen.yml`" + ` with a starter project for the given
language (default rust). When the specification already exists, a new
project block is appended instead, named sequentially.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := "rust"
			if len(args) == 1 {
				tag = args[0]
			}
			if !lang.Supported(tag) {
				return fmt.Errorf("unsupported language %q (choose one of: %s)", tag, strings.Join(lang.Tags(), ", "))
			}

			path := app.SpecPath()
			if !spec.Exists(path) {
				text := projectTemplate("app", tag, true)
				if err := app.WriteSpecText(text); err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "Created %s with a %s project. Run 'treegen up' to materialize it.\n", app.Config.Spec.File, tag)
				return nil
			}

			text, err := app.LoadSpecText()
			if err != nil {
				return err
			}
			cfg, err := spec.ParseString(text)
			if err != nil {
				return err
			}
			name := nextProjectName(cfg)
			updated := edit.AppendProject(text, projectTemplate(name, tag, false))
			if err := app.WriteSpecText(updated); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Appended project %s (%s) to %s.\n", name, tag, app.Config.Spec.File)
			return nil
		},
	}
}

// projectTemplate renders a starter project block for a language.
func projectTemplate(name, tag string, root bool) string {
	var b strings.Builder
	b.WriteString("- name: " + name + "\n")
	if root {
		b.WriteString("  root: true\n")
	}
	b.WriteString("  lang: " + tag + "\n")

	switch tag {
	case "rust", "python":
		b.WriteString("  tree:\n")
		b.WriteString("    - name: src\n")
		b.WriteString("      file:\n")
		b.WriteString("        - name: main\n")
	case "go":
		b.WriteString("  file:\n")
		b.WriteString("    - name: main\n")
	case "typescript", "javascript":
		b.WriteString("  tree:\n")
		b.WriteString("    - name: src\n")
		b.WriteString("      file:\n")
		b.WriteString("        - name: index\n")
		b.WriteString("        - name: main\n")
	}
	return b.String()
}

// nextProjectName picks the first free app_N name.
func nextProjectName(cfg *spec.Config) string {
	taken := make(map[string]bool)
	for i := range cfg.Projects {
		taken[cfg.Projects[i].Name] = true
	}
	for n := len(cfg.Projects); ; n++ {
		name := fmt.Sprintf("app_%d", n)
		if !taken[name] {
			return name
		}
	}
}
