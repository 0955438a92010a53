package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/airwatch/internal/allowlist"
	"github.com/ppiankov/airwatch/internal/model"
)

var checkAllowlist string

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkAllowlist, "allowlist", "", "Path to allow-list YAML (default ~/.airwatch/allowlist.yaml)")
}

var checkCmd = &cobra.Command{
	Use:   "check <ssid>",
	Short: "Classify a network identifier against the allow-list",
	Long: "Loads the allow-list and reports whether the given identifier would\n" +
		"classify as authorized.\n\nExit code 0 if authorized, 1 otherwise.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	id, err := model.NewNetworkID(args[0])
	if err != nil {
		return err
	}

	list, err := allowlist.Load(checkAllowlist)
	if err != nil {
		return fmt.Errorf("load allow-list: %w", err)
	}

	if list.IsAuthorized(id) {
		fmt.Printf("%s: authorized\n", id)
		return nil
	}
	return fmt.Errorf("%s: unauthorized", id)
}
