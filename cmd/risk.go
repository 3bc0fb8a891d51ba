package cmd

import (
	"fmt"

	"revscope/internal/cli"

	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Show downside risk and ROI sensitivity",
	RunE: func(_ *cobra.Command, _ []string) error {
		result, err := loadOrRun()
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("RISK & SENSITIVITY"))
		fmt.Println()

		t := cli.Table{
			Title:   "Downside exposure (Worst vs Base)",
			Headers: []string{"Month", "Base", "Worst", "Shortfall", "Shortfall %", "VaR (CI)"},
		}
		for _, r := range result.Risk {
			t.Rows = append(t.Rows, []string{
				r.Period.Format("Jan 2006"),
				cli.FormatMoney(r.BaseValue),
				cli.FormatMoney(r.WorstValue),
				cli.FormatMoney(r.Shortfall),
				cli.FormatPercent(r.ShortfallPct),
				cli.FormatMoney(r.VaRLower),
			})
		}
		fmt.Print(cli.RenderTable(t))

		if len(result.Sensitivity) > 0 {
			fmt.Println()
			s := cli.Table{
				Title:   "ROI sensitivity (±10% input shift)",
				Headers: []string{"Cluster", "Parameter", "ROI Low", "ROI High", "Elasticity"},
			}
			for _, sv := range result.Sensitivity {
				s.Rows = append(s.Rows, []string{
					fmt.Sprintf("%d", sv.Cluster),
					sv.Parameter,
					cli.FormatROI(sv.ROILow),
					cli.FormatROI(sv.ROIHigh),
					cli.FormatFloat(sv.Elasticity),
				})
			}
			fmt.Print(cli.RenderTable(s))
		}

		printWarnings(result)
		return nil
	},
}

func init() {
	riskCmd.Flags().BoolVar(&flagLast, "last", false, "Use the most recent stored run")
	rootCmd.AddCommand(riskCmd)
}
