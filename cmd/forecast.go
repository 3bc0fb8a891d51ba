package cmd

import (
	"fmt"

	"revscope/internal/cli"
	"revscope/internal/model"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show the seasonal revenue forecast with scenarios",
	RunE: func(_ *cobra.Command, _ []string) error {
		result, err := loadOrRun()
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("REVENUE FORECAST"))
		fmt.Println()
		printForecastTable(result)

		base := result.Aggregate.Series(model.ScenarioBase)
		if len(base) > 1 {
			fmt.Printf("\n  Base trend  %s\n", cli.RenderSparkline(base))
		}
		printWarnings(result)
		return nil
	},
}

func init() {
	forecastCmd.Flags().BoolVar(&flagLast, "last", false, "Use the most recent stored run")
	rootCmd.AddCommand(forecastCmd)
}

func printForecastTable(result *model.RunResult) {
	t := cli.Table{
		Title:   fmt.Sprintf("Aggregate forecast (%.0f%% CI)", result.Aggregate.Base.Confidence*100),
		Headers: []string{"Month", "Worst", "Base", "Best", "Lower CI", "Upper CI"},
	}
	for i, p := range result.Aggregate.Base.Points {
		t.Rows = append(t.Rows, []string{
			p.Period.Format("Jan 2006"),
			cli.FormatMoney(result.Aggregate.Worst[i]),
			cli.FormatMoney(p.Point),
			cli.FormatMoney(result.Aggregate.Best[i]),
			cli.FormatMoney(p.Lower),
			cli.FormatMoney(p.Upper),
		})
	}
	fmt.Print(cli.RenderTable(t))
}
