package commands

import "github.com/spf13/cobra"

// Register attaches every treegen subcommand to the root command.
func Register(root *cobra.Command, app *App) {
	root.AddCommand(
		newUpCmd(app),
		newInitCmd(app),
		newScanCmd(app),
		newLoadCmd(app),
		newRmCmd(app),
		newSyncCmd(app),
		newWatchCmd(app),
		newFetchCmd(app),
	)
}
