package cmd

import (
	"fmt"

	"revscope/internal/cli"
	"revscope/internal/model"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline and print an executive summary",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, _ []string) error {
	result, cfg, err := executeRun()
	if err != nil {
		return err
	}

	var totalInvestment, totalGain, roiSum float64
	var baseCount int
	for _, r := range result.ROI {
		if r.Scenario != model.ScenarioBase {
			continue
		}
		totalInvestment += r.Investment
		totalGain += r.ProjectedGain
		roiSum += r.ROI
		baseCount++
	}
	avgROI := 0.0
	if baseCount > 0 {
		avgROI = roiSum / float64(baseCount)
	}

	var baseRevenue float64
	for _, p := range result.Aggregate.Base.Points {
		baseRevenue += p.Point
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REVSCOPE  %d-month outlook", cfg.Forecast.HorizonMonths)))
	fmt.Println()

	summary := cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Customers", cli.FormatNumber(int64(result.Customers))},
			{"Transactions", cli.FormatNumber(int64(result.Transactions))},
			{"Segments", cli.FormatNumber(int64(len(result.Segments)))},
			{"Reference Date", result.Reference.Format("2006-01-02")},
			{"---"},
			{"Projected Revenue (Base)", cli.FormatMoney(baseRevenue)},
			{"Total Investment", cli.FormatMoney(totalInvestment)},
			{"Projected Gain (Base)", cli.FormatMoney(totalGain)},
			{"Avg ROI (Base)", cli.FormatROI(avgROI)},
		},
	}
	fmt.Print(cli.RenderTable(summary))

	fmt.Println()
	printSegmentTable(result)
	fmt.Println()
	printForecastTable(result)

	if len(result.SkippedSegments) > 0 {
		fmt.Printf("\n  Segments excluded from ROI (no forecast): %v\n", result.SkippedSegments)
	}

	printWarnings(result)
	return nil
}
