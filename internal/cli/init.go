package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/airwatch/internal/allowlist"
	"github.com/ppiankov/airwatch/internal/config"
)

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config files")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap airwatch configuration",
	Long: "Creates ~/.airwatch with a starter config and allow-list.\n" +
		"Edit allowlist.yaml and default_network before running watch.",
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".airwatch")

	configPath := filepath.Join(dir, "config.yaml")
	allowPath := filepath.Join(dir, "allowlist.yaml")

	var created []string

	if initForce || !exists(configPath) {
		cfg := config.DefaultConfig()
		cfg.AllowlistPath = allowPath
		cfg.Default = config.DefaultNetwork{Name: "Home", Credential: "changeme"}
		if err := cfg.Write(configPath); err != nil {
			return err
		}
		created = append(created, configPath)
	}

	if initForce || !exists(allowPath) {
		data, err := yaml.Marshal(allowlist.File{Networks: []string{"Home"}})
		if err != nil {
			return fmt.Errorf("marshal allow-list: %w", err)
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
		if err := os.WriteFile(allowPath, data, 0600); err != nil {
			return fmt.Errorf("write allow-list: %w", err)
		}
		created = append(created, allowPath)
	}

	if len(created) == 0 {
		fmt.Println("airwatch: config already present (use --force to overwrite)")
		return nil
	}
	for _, path := range created {
		fmt.Printf("created %s\n", path)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
