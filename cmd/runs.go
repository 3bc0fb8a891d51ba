package cmd

import (
	"fmt"

	"revscope/internal/cli"
	"revscope/internal/store"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored pipeline runs",
	RunE: func(_ *cobra.Command, _ []string) error {
		st, err := store.Open(store.DBPath())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		runs, err := st.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("  No stored runs. Run `revscope run` first.")
			return nil
		}

		t := cli.Table{
			Title:   "Stored runs",
			Headers: []string{"Run ID", "Created", "Customers", "Transactions"},
		}
		for _, r := range runs {
			t.Rows = append(t.Rows, []string{
				r.RunID[:8],
				r.CreatedAt.Format("2006-01-02 15:04"),
				cli.FormatNumber(int64(r.Customers)),
				cli.FormatNumber(int64(r.Transactions)),
			})
		}
		fmt.Print(cli.RenderTable(t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
