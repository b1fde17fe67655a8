package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/treegen/edit"
	"github.com/c360studio/treegen/scan"
)

func newLoadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>",
		Short: "Record an unmanaged file or directory in the specification",
		Long: `Finds the given path among the entries the scanner reports as
unmanaged and adds it to the specification. Directories are added with
their whole subtree in one edit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.LoadSpecText()
			if err != nil {
				return err
			}
			cfg, err := app.ParseSpec(text)
			if err != nil {
				return err
			}

			found, err := scan.Unmanaged(app.BaseDir, cfg, app.ScanOptions())
			if err != nil {
				return err
			}
			entry, ok := findUnmanaged(found, args[0])
			if !ok {
				return fmt.Errorf("%s is not an unmanaged entry (already recorded, excluded, or absent)", args[0])
			}

			l, err := cfg.Projects[entry.ProjectIndex].Language()
			if err != nil {
				return err
			}
			updated, err := edit.Add(text, entry.ProjectIndex, entry.Segments, entry.IsDir, l, entry.Children)
			if err != nil {
				return err
			}
			app.ShowDiff(text, updated)
			if !app.Confirm("Record this entry in the specification?") {
				fmt.Fprintln(app.Out, "Aborted.")
				return nil
			}
			return app.WriteSpecText(updated)
		},
	}
}

func findUnmanaged(entries []scan.Entry, arg string) (scan.Entry, bool) {
	arg = filepath.ToSlash(arg)
	for _, e := range entries {
		if e.DisplayPath == arg || (e.IsDir && strings.TrimSuffix(e.DisplayPath, "/") == arg) {
			return e, true
		}
	}
	return scan.Entry{}, false
}
