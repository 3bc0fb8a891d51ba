// Package config loads and persists revscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all revscope configuration.
type Config struct {
	Input        InputConfig        `toml:"input"`
	Segmentation SegmentationConfig `toml:"segmentation"`
	Forecast     ForecastConfig     `toml:"forecast"`
	Scenario     ScenarioConfig     `toml:"scenario"`
	Investment   InvestmentConfig   `toml:"investment"`
	Appearance   AppearanceConfig   `toml:"appearance"`
}

// InputConfig selects the transaction data source.
type InputConfig struct {
	Path   string `toml:"path,omitempty"`   // CSV file
	Format string `toml:"format,omitempty"` // "csv" or "mysql"
	DSN    string `toml:"dsn,omitempty"`    // for format = "mysql"
	Table  string `toml:"table,omitempty"`  // transaction table name
	// ReferenceDate overrides the recency anchor ("2006-01-02").
	// Empty means the latest transaction date in the data.
	ReferenceDate string `toml:"reference_date,omitempty"`
}

// SegmentationConfig controls RFM clustering.
type SegmentationConfig struct {
	Clusters int   `toml:"clusters"`
	Seed     int64 `toml:"seed"`
	MaxIter  int   `toml:"max_iter,omitempty"`
}

// ForecastConfig controls the seasonal revenue model.
type ForecastConfig struct {
	HorizonMonths  int     `toml:"horizon_months"`
	Confidence     float64 `toml:"confidence"`
	SeasonalPeriod int     `toml:"seasonal_period"`
	MinCycles      int     `toml:"min_cycles"`
}

// ScenarioConfig holds the Best/Worst adjustment parameters.
type ScenarioConfig struct {
	BestGrowth    float64 `toml:"best_growth"`    // multiplicative uplift on the point forecast
	WorstDrawdown float64 `toml:"worst_drawdown"` // multiplicative haircut on the point forecast
	IntervalBias  float64 `toml:"interval_bias"`  // 0..1 blend toward the CI bound
	MonteCarlo    bool    `toml:"monte_carlo"`
	Draws         int     `toml:"draws,omitempty"`
	Seed          int64   `toml:"seed,omitempty"`
}

// SegmentInvestment is the investment assumption for one segment.
type SegmentInvestment struct {
	Cost   float64 `toml:"cost"`
	Uplift float64 `toml:"uplift"`
}

// InvestmentConfig holds per-segment investment assumptions.
// Segments map keys are cluster labels ("0", "1", ...); Default applies
// to clusters without an explicit entry.
type InvestmentConfig struct {
	Default  SegmentInvestment            `toml:"default"`
	Segments map[string]SegmentInvestment `toml:"segments,omitempty"`
}

// AppearanceConfig holds dashboard theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Format: "csv",
			Table:  "transactions",
		},
		Segmentation: SegmentationConfig{
			Clusters: 4,
			Seed:     42,
			MaxIter:  100,
		},
		Forecast: ForecastConfig{
			HorizonMonths:  6,
			Confidence:     0.95,
			SeasonalPeriod: 12,
			MinCycles:      1,
		},
		Scenario: ScenarioConfig{
			BestGrowth:    0.05,
			WorstDrawdown: 0.05,
			IntervalBias:  0.5,
			Draws:         1000,
			Seed:          42,
		},
		Investment: InvestmentConfig{
			Default: SegmentInvestment{Cost: 10_000, Uplift: 0.10},
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "revscope")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "revscope")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// InvestmentFor resolves the investment assumption for a cluster label.
// The bool reports whether any assumption (default included) is configured.
func (c InvestmentConfig) InvestmentFor(cluster int) (SegmentInvestment, bool) {
	if inv, ok := c.Segments[fmt.Sprintf("%d", cluster)]; ok {
		return inv, true
	}
	if c.Default.Cost != 0 || c.Default.Uplift != 0 {
		return c.Default, true
	}
	return SegmentInvestment{}, false
}
