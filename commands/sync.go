package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/treegen/edit"
	"github.com/c360studio/treegen/scan"
)

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the specification with the filesystem",
		Long: `Removes specification entries whose files no longer exist, then
records everything on disk the specification does not know about.
Removals are applied first and the specification re-parsed before
additions, so path resolution always works against consistent text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(app)
		},
	}
}

// runSync performs one reconciliation pass. Shared with the watch
// command.
func runSync(app *App) error {
	text, err := app.LoadSpecText()
	if err != nil {
		return err
	}
	cfg, err := app.ParseSpec(text)
	if err != nil {
		return err
	}
	original := text

	for _, m := range scan.FilterNested(scan.Missing(app.BaseDir, cfg)) {
		text, err = edit.Remove(text, m)
		if err != nil {
			return err
		}
		app.Logger.Info("removed missing entry", "path", m.DisplayPath)
	}

	// Removals shifted anchors; additions need a model of the current text.
	cfg, err = app.ParseSpec(text)
	if err != nil {
		return err
	}

	found, err := scan.Unmanaged(app.BaseDir, cfg, app.ScanOptions())
	if err != nil {
		return err
	}
	for _, e := range found {
		l, err := cfg.Projects[e.ProjectIndex].Language()
		if err != nil {
			return err
		}
		text, err = edit.Add(text, e.ProjectIndex, e.Segments, e.IsDir, l, e.Children)
		if err != nil {
			return err
		}
		app.Logger.Info("recorded unmanaged entry", "path", e.DisplayPath)
	}

	if text == original {
		fmt.Fprintln(app.Out, "Specification already matches the filesystem.")
		return nil
	}

	app.ShowDiff(original, text)
	if !app.Confirm("Apply these specification changes?") {
		fmt.Fprintln(app.Out, "Aborted.")
		return nil
	}
	return app.WriteSpecText(text)
}
