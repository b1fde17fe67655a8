package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/treegen/edit"
	"github.com/c360studio/treegen/spec"
)

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a managed entry from disk and the specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.LoadSpecText()
			if err != nil {
				return err
			}
			cfg, err := app.ParseSpec(text)
			if err != nil {
				return err
			}

			target, ok := findManaged(spec.CollectEntries(cfg), args[0])
			if !ok {
				return fmt.Errorf("%s is not managed by the specification", args[0])
			}

			if !app.Confirm(fmt.Sprintf("Remove %s from disk and the specification?", target.DisplayPath)) {
				fmt.Fprintln(app.Out, "Aborted.")
				return nil
			}

			full := filepath.Join(app.BaseDir, filepath.FromSlash(target.DisplayPath))
			if target.IsDir {
				err = os.RemoveAll(full)
			} else {
				err = os.Remove(full)
			}
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", target.DisplayPath, err)
			}

			updated, err := edit.Remove(text, target)
			if err != nil {
				return err
			}
			app.ShowDiff(text, updated)
			return app.WriteSpecText(updated)
		},
	}
}

// findManaged matches a user-supplied path against collected entries,
// tolerating a missing trailing slash on directories. Matching is by
// exact display path only.
func findManaged(entries []spec.ManagedPath, arg string) (spec.ManagedPath, bool) {
	arg = filepath.ToSlash(arg)
	for _, e := range entries {
		if e.DisplayPath == arg || (e.IsDir && strings.TrimSuffix(e.DisplayPath, "/") == arg) {
			return e, true
		}
	}
	return spec.ManagedPath{}, false
}
