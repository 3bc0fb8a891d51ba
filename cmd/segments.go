package cmd

import (
	"fmt"

	"revscope/internal/cli"
	"revscope/internal/model"

	"github.com/spf13/cobra"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Show RFM customer segments and recommended actions",
	RunE: func(_ *cobra.Command, _ []string) error {
		result, err := loadOrRun()
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("CUSTOMER SEGMENTS"))
		fmt.Println()
		printSegmentTable(result)
		printWarnings(result)
		return nil
	},
}

func init() {
	segmentsCmd.Flags().BoolVar(&flagLast, "last", false, "Use the most recent stored run")
	rootCmd.AddCommand(segmentsCmd)
}

func printSegmentTable(result *model.RunResult) {
	t := cli.Table{
		Title:   "Segments",
		Headers: []string{"Cluster", "Customers", "Recency (d)", "Frequency", "Avg Spend", "Total Spend", "Action"},
	}
	for _, seg := range result.Segments {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", seg.Cluster),
			cli.FormatNumber(int64(seg.CustomerCount)),
			fmt.Sprintf("%.1f", seg.AvgRecency),
			fmt.Sprintf("%.1f", seg.AvgFrequency),
			cli.FormatMoney(seg.AvgMonetary),
			cli.FormatMoney(seg.TotalMonetary),
			seg.DecisionAction,
		})
	}
	fmt.Print(cli.RenderTable(t))
}
