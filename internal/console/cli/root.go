package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "fieldops" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "fieldops",
		Short:         "Field crew console: work orders, payments and navigation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.Config.Team, "team", app.Config.Team, "Team id (defaults to the last logged-in team)")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newJobsCmd(app),
		newShowCmd(app),
		newStartCmd(app),
		newCompleteCmd(app),
		newReceiveCmd(app),
		newNavigateCmd(app),
		newBoardCmd(app),
	)

	return root
}
