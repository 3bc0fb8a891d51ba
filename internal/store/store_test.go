package store

import (
	"path/filepath"
	"testing"
	"time"

	"revscope/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleRun(runID string, created time.Time) *model.RunResult {
	base := model.ForecastSeries{SeriesID: "aggregate", Confidence: 0.95}
	set := model.ScenarioSet{SeriesID: "aggregate"}
	for h := 0; h < 3; h++ {
		base.Points = append(base.Points, model.ForecastPoint{
			Period: time.Date(2024, time.Month(7+h), 1, 0, 0, 0, 0, time.UTC),
			Point:  1000,
			Lower:  900,
			Upper:  1100,
		})
		set.Best = append(set.Best, 1100)
		set.Worst = append(set.Worst, 900)
	}
	set.Base = base

	return &model.RunResult{
		RunID:        runID,
		CreatedAt:    created,
		Reference:    time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Customers:    42,
		Transactions: 310,
		Segments: []model.Segment{
			{Cluster: 0, CustomerCount: 12, AvgRecency: 5, AvgFrequency: 8,
				AvgMonetary: 900, TotalMonetary: 10800, DecisionAction: "Invest & Retain"},
			{Cluster: 1, CustomerCount: 30, AvgRecency: 90, AvgFrequency: 2,
				AvgMonetary: 60, TotalMonetary: 1800, DecisionAction: "Re-Engage"},
		},
		Aggregate: set,
		ROI: []model.ROIResult{
			{Cluster: 0, Scenario: model.ScenarioBase, Investment: 300, UpliftRate: 0.1,
				ProjectedRevenue: 3000, ProjectedGain: 300, ROI: 0, BreakEvenRevenue: 3000},
		},
		Risk: []model.RiskMetric{
			{Period: base.Points[0].Period, BaseValue: 1000, WorstValue: 900,
				Shortfall: 100, ShortfallPct: 0.1, VaRLower: 100},
		},
		Sensitivity: []model.Sensitivity{
			{Cluster: 0, Parameter: "investment_cost", DeltaPct: 0.1,
				ROILow: 0.11, ROIHigh: -0.09, Elasticity: -1},
		},
		Warnings: []model.Warning{
			{Stage: "prep", Ref: "row 9", Message: "unparsable date"},
		},
	}
}

func testRunConfig() RunConfig {
	return RunConfig{Horizon: 3, Clusters: 2, Confidence: 0.95, Seed: 42}
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	st := openTestStore(t)

	saved := sampleRun("run-1", time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	if err := st.SaveRun(saved, testRunConfig()); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	loaded, err := st.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}

	if loaded.Customers != saved.Customers || loaded.Transactions != saved.Transactions {
		t.Errorf("counts = %d/%d, want %d/%d",
			loaded.Customers, loaded.Transactions, saved.Customers, saved.Transactions)
	}
	if !loaded.Reference.Equal(saved.Reference) {
		t.Errorf("Reference = %v, want %v", loaded.Reference, saved.Reference)
	}
	if len(loaded.Segments) != 2 {
		t.Fatalf("len(Segments) = %d, want 2", len(loaded.Segments))
	}
	if loaded.Segments[0].DecisionAction != "Invest & Retain" {
		t.Errorf("DecisionAction = %q, want Invest & Retain", loaded.Segments[0].DecisionAction)
	}
	if len(loaded.Aggregate.Base.Points) != 3 {
		t.Fatalf("forecast points = %d, want 3", len(loaded.Aggregate.Base.Points))
	}
	if loaded.Aggregate.Worst[0] != 900 || loaded.Aggregate.Best[0] != 1100 {
		t.Errorf("scenario bounds = %v/%v, want 900/1100",
			loaded.Aggregate.Worst[0], loaded.Aggregate.Best[0])
	}
	if len(loaded.ROI) != 1 || loaded.ROI[0].Scenario != model.ScenarioBase {
		t.Errorf("ROI = %+v, want one base row", loaded.ROI)
	}
	if len(loaded.Risk) != 1 || loaded.Risk[0].Shortfall != 100 {
		t.Errorf("Risk = %+v, want one row with shortfall 100", loaded.Risk)
	}
	if len(loaded.Sensitivity) != 1 || loaded.Sensitivity[0].Parameter != "investment_cost" {
		t.Errorf("Sensitivity = %+v, want investment_cost row", loaded.Sensitivity)
	}
	if len(loaded.Warnings) != 1 || loaded.Warnings[0].Ref != "row 9" {
		t.Errorf("Warnings = %+v, want the stored warning", loaded.Warnings)
	}
}

func TestStore_LatestRunID(t *testing.T) {
	st := openTestStore(t)

	if _, err := st.LatestRunID(); err == nil {
		t.Error("LatestRunID on empty store should fail")
	}

	older := sampleRun("run-old", time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC))
	newer := sampleRun("run-new", time.Date(2024, 7, 1, 11, 0, 0, 0, time.UTC))
	if err := st.SaveRun(older, testRunConfig()); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := st.SaveRun(newer, testRunConfig()); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	id, err := st.LatestRunID()
	if err != nil {
		t.Fatalf("LatestRunID: %v", err)
	}
	if id != "run-new" {
		t.Errorf("LatestRunID = %q, want run-new", id)
	}
}

func TestStore_ListRuns(t *testing.T) {
	st := openTestStore(t)

	for i, id := range []string{"a", "b", "c"} {
		run := sampleRun(id, time.Date(2024, 7, 1, 9+i, 0, 0, 0, time.UTC))
		if err := st.SaveRun(run, testRunConfig()); err != nil {
			t.Fatalf("SaveRun(%s): %v", id, err)
		}
	}

	runs, err := st.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	if runs[0].RunID != "c" {
		t.Errorf("runs[0] = %q, want most recent first", runs[0].RunID)
	}
}

func TestStore_LoadMissingRun(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.LoadRun("nope"); err == nil {
		t.Error("LoadRun of unknown id should fail")
	}
}
