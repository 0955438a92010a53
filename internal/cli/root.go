package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "airwatch",
	Short: "Wi-Fi association watchdog for embedded devices",
	Long: "Continuously verifies that the associated wireless network is on the\n" +
		"configured allow-list, and remediates unauthorized association by\n" +
		"disconnecting and rejoining the known default network.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
