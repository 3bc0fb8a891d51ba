package cmd

import (
	"fmt"

	"revscope/internal/cli"

	"github.com/spf13/cobra"
)

var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Show simulated ROI per segment and scenario",
	RunE: func(_ *cobra.Command, _ []string) error {
		result, err := loadOrRun()
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("ROI SIMULATION"))
		fmt.Println()

		t := cli.Table{
			Title:   "ROI per segment and scenario",
			Headers: []string{"Cluster", "Scenario", "Investment", "Revenue", "Gain", "ROI", "Break-even"},
		}
		for _, r := range result.ROI {
			t.Rows = append(t.Rows, []string{
				fmt.Sprintf("%d", r.Cluster),
				string(r.Scenario),
				cli.FormatMoney(r.Investment),
				cli.FormatMoney(r.ProjectedRevenue),
				cli.FormatMoney(r.ProjectedGain),
				cli.FormatROI(r.ROI),
				cli.FormatMoney(r.BreakEvenRevenue),
			})
		}
		fmt.Print(cli.RenderTable(t))

		if len(result.MonteCarlo) > 0 {
			fmt.Println()
			mc := cli.Table{
				Title:   fmt.Sprintf("Monte Carlo (%d draws, seed %d)", result.MonteCarlo[0].Draws, result.MonteCarlo[0].Seed),
				Headers: []string{"Cluster", "Mean ROI", "P5", "P50", "P95"},
			}
			for _, m := range result.MonteCarlo {
				mc.Rows = append(mc.Rows, []string{
					fmt.Sprintf("%d", m.Cluster),
					cli.FormatROI(m.Mean),
					cli.FormatROI(m.P5),
					cli.FormatROI(m.P50),
					cli.FormatROI(m.P95),
				})
			}
			fmt.Print(cli.RenderTable(mc))
		}

		if len(result.SkippedSegments) > 0 {
			fmt.Printf("\n  Segments excluded from ROI (no forecast): %v\n", result.SkippedSegments)
		}
		printWarnings(result)
		return nil
	},
}

func init() {
	roiCmd.Flags().BoolVar(&flagLast, "last", false, "Use the most recent stored run")
	rootCmd.AddCommand(roiCmd)
}
