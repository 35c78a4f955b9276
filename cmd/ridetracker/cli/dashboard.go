package cli

import (
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show spending statistics and ride history",
	Long: `Fetch the dashboard statistics and the ride history and print both.
A failed fetch is shown in place of the data it would have filled.

Examples:
  ridetracker dashboard
  ridetracker dashboard --api-url http://localhost:5000`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	t, err := openTerminal(cmd, newTTYConfirmer(false))
	if err != nil {
		return err
	}
	defer t.close()

	t.ctrl.Load(cmd.Context())
	printDashboard(cmd.OutOrStdout(), t.view.Snapshot())
	return nil
}
