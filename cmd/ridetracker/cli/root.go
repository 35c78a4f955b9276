package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagAPIURL   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "ridetracker",
	Short: "Ride expense dashboard",
	Long: `ridetracker shows what you spend on app rides. It reads statistics and
ride history from the ride tracking API and lets you add, edit and delete
rides from the terminal or from a small web dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.ridetracker/config.hcl)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "ride tracking API base URL")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
