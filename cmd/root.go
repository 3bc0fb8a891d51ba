package cmd

import (
	"context"
	"fmt"
	"os"

	"revscope/internal/config"
	"revscope/internal/model"
	"revscope/internal/pipeline"
	"revscope/internal/source"
	"revscope/internal/store"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagInput   string
	flagFormat  string
	flagDSN     string
	flagQuiet   bool
	flagNoStore bool
	flagLast    bool
)

var rootCmd = &cobra.Command{
	Use:   "revscope",
	Short: "Revenue decision intelligence CLI",
	Long:  "Segment customers, forecast revenue with scenarios, and simulate ROI and risk.",
	RunE:  runRun,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "Transaction CSV file")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Input format: csv or mysql")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "MySQL DSN (for --format mysql)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoStore, "no-store", false, "Skip saving results to the run store")
}

// loadConfig merges the config file with command-line overrides.
func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	if flagInput != "" {
		cfg.Input.Path = flagInput
		if cfg.Input.Format == "" || flagFormat == "" {
			cfg.Input.Format = "csv"
		}
	}
	if flagFormat != "" {
		cfg.Input.Format = flagFormat
	}
	if flagDSN != "" {
		cfg.Input.DSN = flagDSN
	}

	return cfg, nil
}

// loadDataset reads transactions from the configured source.
func loadDataset(cfg config.Config) (*source.LoadResult, error) {
	switch cfg.Input.Format {
	case "", "csv":
		if cfg.Input.Path == "" {
			return nil, &model.ConfigurationError{
				Field:  "input.path",
				Reason: "no input file configured (use --input or `revscope setup`)",
			}
		}
		return source.ReadCSV(cfg.Input.Path)

	case "mysql":
		if cfg.Input.DSN == "" {
			return nil, &model.ConfigurationError{Field: "input.dsn", Reason: "mysql format requires a DSN"}
		}
		db, err := source.OpenMySQL(cfg.Input.DSN)
		if err != nil {
			return nil, fmt.Errorf("connecting to mysql: %w", err)
		}
		defer func() { _ = db.Close() }()
		return source.LoadMySQL(context.Background(), db, cfg.Input.Table)

	default:
		return nil, &model.ConfigurationError{
			Field:  "input.format",
			Reason: fmt.Sprintf("unknown format %q (want csv or mysql)", cfg.Input.Format),
		}
	}
}

// executeRun loads data, runs the pipeline with stage progress, and
// saves the result to the run store.
func executeRun() (*model.RunResult, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loading transactions...\n")
	}
	load, err := loadDataset(cfg)
	if err != nil {
		return nil, cfg, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loaded %d rows (%d dropped)\n", load.TotalRows, load.DroppedRows)
	}

	var bar *progressbar.ProgressBar
	if !flagQuiet {
		bar = progressbar.NewOptions(len(pipeline.Stages),
			progressbar.OptionSetDescription("  Running pipeline"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
	}
	progressFn := func(stage string) {
		if bar != nil {
			bar.Describe("  " + stage)
			_ = bar.Add(1)
		}
	}

	result, err := pipeline.Run(cfg, load, progressFn)
	if err != nil {
		return nil, cfg, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if !flagNoStore {
		if err := saveRun(result, cfg); err != nil {
			// Storing is best effort; the computed result is still usable.
			fmt.Fprintf(os.Stderr, "  warning: could not save run: %v\n", err)
		}
	}

	return result, cfg, nil
}

func saveRun(result *model.RunResult, cfg config.Config) error {
	st, err := store.Open(store.DBPath())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	return st.SaveRun(result, store.RunConfig{
		Horizon:    cfg.Forecast.HorizonMonths,
		Clusters:   cfg.Segmentation.Clusters,
		Confidence: cfg.Forecast.Confidence,
		Seed:       cfg.Segmentation.Seed,
	})
}

// loadOrRun returns the latest stored run when --last is set, otherwise
// executes the pipeline fresh.
func loadOrRun() (*model.RunResult, error) {
	if flagLast {
		st, err := store.Open(store.DBPath())
		if err != nil {
			return nil, err
		}
		defer func() { _ = st.Close() }()

		id, err := st.LatestRunID()
		if err != nil {
			return nil, err
		}
		return st.LoadRun(id)
	}

	result, _, err := executeRun()
	return result, err
}

// printWarnings writes collected run warnings to stderr.
func printWarnings(result *model.RunResult) {
	if flagQuiet || len(result.Warnings) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n  %d warnings:\n", len(result.Warnings))
	limit := len(result.Warnings)
	if limit > 10 {
		limit = 10
	}
	for _, w := range result.Warnings[:limit] {
		fmt.Fprintf(os.Stderr, "    %s\n", w)
	}
	if len(result.Warnings) > limit {
		fmt.Fprintf(os.Stderr, "    ... and %d more\n", len(result.Warnings)-limit)
	}
}
