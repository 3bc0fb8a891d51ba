package cmd

import (
	"fmt"
	"path/filepath"

	"revscope/internal/model"
	"revscope/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagExportOut    string
	flagExportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run results to CSV, JSON, or XLSX",
	RunE: func(_ *cobra.Command, _ []string) error {
		result, err := loadOrRun()
		if err != nil {
			return err
		}

		tables := report.AllTables(result)
		switch flagExportFormat {
		case "csv":
			paths, err := report.ExportCSV(flagExportOut, tables)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Printf("  wrote %s\n", p)
			}

		case "json":
			path := filepath.Join(flagExportOut, "revscope.json")
			if err := report.ExportJSON(path, tables); err != nil {
				return err
			}
			fmt.Printf("  wrote %s\n", path)

		case "xlsx":
			path := filepath.Join(flagExportOut, "revscope.xlsx")
			if err := report.ExportXLSX(path, tables); err != nil {
				return err
			}
			fmt.Printf("  wrote %s\n", path)

		default:
			return &model.ConfigurationError{
				Field:  "export format",
				Reason: fmt.Sprintf("unknown format %q (want csv, json, or xlsx)", flagExportFormat),
			}
		}

		printWarnings(result)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&flagLast, "last", false, "Use the most recent stored run")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", ".", "Output directory")
	exportCmd.Flags().StringVar(&flagExportFormat, "export-format", "csv", "Export format: csv, json, or xlsx")
	rootCmd.AddCommand(exportCmd)
}
