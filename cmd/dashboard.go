package cmd

import (
	"revscope/internal/tui"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Open the interactive terminal dashboard",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		flagQuiet = true // progress output would corrupt the TUI
		return tui.Run(loadOrRun, cfg)
	},
}

func init() {
	dashboardCmd.Flags().BoolVar(&flagLast, "last", false, "Use the most recent stored run")
	rootCmd.AddCommand(dashboardCmd)
}
