package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Materialize the specification onto the filesystem",
		Long: `Reads the specification, validates it, and creates every directory
and file it describes. Existing code files are never overwritten;
module manifests are refreshed only between their marker comments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.LoadSpecText()
			if err != nil {
				return err
			}
			cfg, err := app.ParseSpec(text)
			if err != nil {
				return err
			}
			if err := app.Generator().Run(cmd.Context(), cfg); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Project tree is up to date.")
			return nil
		},
	}
}
