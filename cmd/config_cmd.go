package cmd

import (
	"fmt"
	"os"

	"revscope/internal/config"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if config.Exists() {
			fmt.Fprintf(os.Stderr, "# %s\n", config.ConfigPath())
		} else {
			fmt.Fprintf(os.Stderr, "# no config file, showing defaults (run `revscope setup`)\n")
		}
		return toml.NewEncoder(os.Stdout).Encode(cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(_ *cobra.Command, _ []string) error {
		if config.Exists() {
			return fmt.Errorf("config already exists at %s", config.ConfigPath())
		}
		if err := config.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", config.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
