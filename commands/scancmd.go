package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/treegen/scan"
)

func newScanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Report where disk and specification disagree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.LoadSpecText()
			if err != nil {
				return err
			}
			cfg, err := app.ParseSpec(text)
			if err != nil {
				return err
			}

			unmanaged, err := scan.Unmanaged(app.BaseDir, cfg, app.ScanOptions())
			if err != nil {
				return err
			}
			missing := scan.FilterNested(scan.Missing(app.BaseDir, cfg))

			if len(unmanaged) == 0 && len(missing) == 0 {
				fmt.Fprintln(app.Out, "Specification and filesystem are in sync.")
				return nil
			}

			if len(unmanaged) > 0 {
				fmt.Fprintln(app.Out, "On disk but not in the specification (use 'treegen load' or 'treegen sync'):")
				for _, e := range unmanaged {
					fmt.Fprintf(app.Out, "  + %s\n", e.DisplayPath)
				}
			}
			if len(missing) > 0 {
				fmt.Fprintln(app.Out, "In the specification but missing from disk:")
				for _, e := range missing {
					fmt.Fprintf(app.Out, "  - %s\n", e.DisplayPath)
				}
			}
			return nil
		},
	}
}
