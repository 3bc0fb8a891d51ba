package pipeline

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"revscope/internal/config"
	"revscope/internal/model"
	"revscope/internal/source"
)

// syntheticLoad builds 24 months of transactions for three spending
// tiers, enough history for seasonal fitting on every segment.
func syntheticLoad() *source.LoadResult {
	load := &source.LoadResult{}
	tiers := []struct {
		prefix string
		count  int
		amount float64
	}{
		{"vip", 6, 900},
		{"mid", 10, 250},
		{"low", 14, 40},
	}

	seq := 0
	for month := 0; month < 24; month++ {
		date := day(2022, 1, 15).AddDate(0, month, 0)
		for _, tier := range tiers {
			for i := 0; i < tier.count; i++ {
				seq++
				// Mild seasonal swing so the fit has structure.
				amount := tier.amount * (1 + 0.1*float64(month%12)/12)
				load.Transactions = append(load.Transactions, model.Transaction{
					ID:         fmt.Sprintf("t%d", seq),
					CustomerID: fmt.Sprintf("%s-%d", tier.prefix, i),
					Date:       date,
					Amount:     amount,
				})
			}
		}
	}
	load.TotalRows = len(load.Transactions)
	return load
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Segmentation.Clusters = 3
	return cfg
}

func TestRun_Deterministic(t *testing.T) {
	cfg := testConfig()

	first, err := Run(cfg, syntheticLoad(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Run(cfg, syntheticLoad(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Run identity differs; everything derived from the data must not.
	if !reflect.DeepEqual(first.Segments, second.Segments) {
		t.Errorf("segments differ between identical runs")
	}
	if !reflect.DeepEqual(first.Aggregate, second.Aggregate) {
		t.Errorf("aggregate scenarios differ between identical runs")
	}
	if !reflect.DeepEqual(first.ROI, second.ROI) {
		t.Errorf("ROI results differ between identical runs")
	}
	if !reflect.DeepEqual(first.Risk, second.Risk) {
		t.Errorf("risk metrics differ between identical runs")
	}
	if first.RunID == second.RunID {
		t.Errorf("run ids collide: %s", first.RunID)
	}
}

func TestRun_ProducesAllStages(t *testing.T) {
	var stages []string
	result, err := Run(testConfig(), syntheticLoad(), func(stage string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(stages, Stages) {
		t.Errorf("reported stages = %v, want %v", stages, Stages)
	}

	if result.Customers != 30 {
		t.Errorf("Customers = %d, want 30", result.Customers)
	}
	if len(result.Segments) == 0 {
		t.Errorf("no segments produced")
	}
	if len(result.Aggregate.Base.Points) != 6 {
		t.Errorf("aggregate horizon = %d, want 6", len(result.Aggregate.Base.Points))
	}
	if len(result.ROI) == 0 {
		t.Errorf("no ROI results produced")
	}
	if len(result.Risk) != 6 {
		t.Errorf("len(Risk) = %d, want one per horizon month", len(result.Risk))
	}
	if len(result.Sensitivity) == 0 {
		t.Errorf("no sensitivity results produced")
	}
}

func TestRun_InvalidConfigRejected(t *testing.T) {
	cfg := testConfig()
	cfg.Investment.Default.Cost = 0

	_, err := Run(cfg, syntheticLoad(), nil)

	var ce *model.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want ConfigurationError", err)
	}
}

func TestRun_BadReferenceDateRejected(t *testing.T) {
	cfg := testConfig()
	cfg.Input.ReferenceDate = "not-a-date"

	_, err := Run(cfg, syntheticLoad(), nil)

	var ce *model.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want ConfigurationError", err)
	}
}

func TestRun_PropagatesLoadWarnings(t *testing.T) {
	load := syntheticLoad()
	load.Warnings = append(load.Warnings, model.Warning{
		Stage: "prep", Ref: "row 7", Message: "unparsable date",
	})

	result, err := Run(testConfig(), load, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if w.Ref == "row 7" {
			found = true
		}
	}
	if !found {
		t.Errorf("load warning not carried into run result")
	}
}
