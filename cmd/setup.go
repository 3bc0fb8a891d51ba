package cmd

import (
	"fmt"
	"strconv"

	"revscope/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive first-run configuration",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := config.DefaultConfig()
	if config.Exists() {
		loaded, err := config.Load()
		if err == nil {
			cfg = loaded
		}
	}

	clusters := strconv.Itoa(cfg.Segmentation.Clusters)
	horizon := strconv.Itoa(cfg.Forecast.HorizonMonths)
	cost := fmt.Sprintf("%.0f", cfg.Investment.Default.Cost)
	uplift := fmt.Sprintf("%.2f", cfg.Investment.Default.Uplift)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Data source").
				Options(
					huh.NewOption("CSV file", "csv"),
					huh.NewOption("MySQL database", "mysql"),
				).
				Value(&cfg.Input.Format),
			huh.NewInput().
				Title("CSV path (or MySQL DSN)").
				Placeholder("transactions.csv").
				Value(&cfg.Input.Path),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Customer segments (k)").
				Value(&clusters).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Forecast horizon (months)").
				Value(&horizon).
				Validate(validatePositiveInt),
			huh.NewConfirm().
				Title("Run Monte Carlo ROI simulation?").
				Value(&cfg.Scenario.MonteCarlo),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default investment per segment").
				Value(&cost).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Expected uplift rate (0-1)").
				Value(&uplift).
				Validate(validateRate),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	// DSN entered in the path field moves to the right slot.
	if cfg.Input.Format == "mysql" {
		cfg.Input.DSN = cfg.Input.Path
		cfg.Input.Path = ""
	}

	cfg.Segmentation.Clusters, _ = strconv.Atoi(clusters)
	cfg.Forecast.HorizonMonths, _ = strconv.Atoi(horizon)
	cfg.Investment.Default.Cost, _ = strconv.ParseFloat(cost, 64)
	cfg.Investment.Default.Uplift, _ = strconv.ParseFloat(uplift, 64)

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("  Saved %s\n", config.ConfigPath())
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func validatePositiveFloat(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateRate(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 || f > 1 {
		return fmt.Errorf("enter a rate between 0 and 1")
	}
	return nil
}
