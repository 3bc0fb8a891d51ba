package config

import (
	"fmt"

	"revscope/internal/model"
)

// Validate checks the configuration surface the pipeline depends on.
// The first invalid field is returned as a ConfigurationError.
func Validate(cfg Config) error {
	if cfg.Segmentation.Clusters < 2 {
		return &model.ConfigurationError{
			Field:  "segmentation.clusters",
			Reason: fmt.Sprintf("must be at least 2, got %d", cfg.Segmentation.Clusters),
		}
	}
	if cfg.Forecast.HorizonMonths < 1 {
		return &model.ConfigurationError{
			Field:  "forecast.horizon_months",
			Reason: fmt.Sprintf("must be at least 1, got %d", cfg.Forecast.HorizonMonths),
		}
	}
	if cfg.Forecast.Confidence <= 0 || cfg.Forecast.Confidence >= 1 {
		return &model.ConfigurationError{
			Field:  "forecast.confidence",
			Reason: fmt.Sprintf("must be in (0, 1), got %g", cfg.Forecast.Confidence),
		}
	}
	if cfg.Forecast.SeasonalPeriod < 2 {
		return &model.ConfigurationError{
			Field:  "forecast.seasonal_period",
			Reason: fmt.Sprintf("must be at least 2, got %d", cfg.Forecast.SeasonalPeriod),
		}
	}
	if cfg.Forecast.MinCycles < 1 {
		return &model.ConfigurationError{
			Field:  "forecast.min_cycles",
			Reason: fmt.Sprintf("must be at least 1, got %d", cfg.Forecast.MinCycles),
		}
	}
	if cfg.Scenario.BestGrowth < 0 {
		return &model.ConfigurationError{
			Field:  "scenario.best_growth",
			Reason: "must not be negative",
		}
	}
	if cfg.Scenario.WorstDrawdown < 0 || cfg.Scenario.WorstDrawdown > 1 {
		return &model.ConfigurationError{
			Field:  "scenario.worst_drawdown",
			Reason: fmt.Sprintf("must be in [0, 1], got %g", cfg.Scenario.WorstDrawdown),
		}
	}
	if cfg.Scenario.IntervalBias < 0 || cfg.Scenario.IntervalBias > 1 {
		return &model.ConfigurationError{
			Field:  "scenario.interval_bias",
			Reason: fmt.Sprintf("must be in [0, 1], got %g", cfg.Scenario.IntervalBias),
		}
	}
	if cfg.Scenario.MonteCarlo && cfg.Scenario.Draws < 1 {
		return &model.ConfigurationError{
			Field:  "scenario.draws",
			Reason: "monte carlo enabled but draws < 1",
		}
	}

	if err := validateInvestment("investment.default", cfg.Investment.Default); err != nil {
		return err
	}
	for label, inv := range cfg.Investment.Segments {
		if err := validateInvestment("investment.segments."+label, inv); err != nil {
			return err
		}
	}

	return nil
}

// validateInvestment rejects assumptions that would make the ROI ratio
// undefined. A zero-cost investment divides by zero; it is a config
// problem, never a computed result.
func validateInvestment(field string, inv SegmentInvestment) error {
	if inv.Cost <= 0 {
		return &model.ConfigurationError{
			Field:  field + ".cost",
			Reason: fmt.Sprintf("must be positive, got %g", inv.Cost),
		}
	}
	if inv.Uplift <= 0 || inv.Uplift > 1 {
		return &model.ConfigurationError{
			Field:  field + ".uplift",
			Reason: fmt.Sprintf("must be in (0, 1], got %g", inv.Uplift),
		}
	}
	return nil
}
