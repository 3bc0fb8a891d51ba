package pipeline

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"revscope/internal/config"
	"revscope/internal/model"
)

func scenarioFor(cluster int, monthly float64, horizon int) model.ScenarioSet {
	base := model.ForecastSeries{SeriesID: "segment-0", Confidence: 0.95}
	set := model.ScenarioSet{SeriesID: base.SeriesID}
	for h := 0; h < horizon; h++ {
		base.Points = append(base.Points, model.ForecastPoint{
			Period: day(2024, 7, 1).AddDate(0, h, 0),
			Point:  monthly,
			Lower:  monthly * 0.9,
			Upper:  monthly * 1.1,
		})
		set.Best = append(set.Best, monthly*1.1)
		set.Worst = append(set.Worst, monthly*0.9)
	}
	set.Base = base
	return set
}

func singleSegment() []model.Segment {
	return []model.Segment{{Cluster: 0, CustomerCount: 10, AvgMonetary: 500}}
}

func investment(cost, uplift float64) config.InvestmentConfig {
	return config.InvestmentConfig{Default: config.SegmentInvestment{Cost: cost, Uplift: uplift}}
}

func TestSimulateROI_RoundTrip(t *testing.T) {
	scenarios := map[int]model.ScenarioSet{0: scenarioFor(0, 1000, 6)}

	results, skipped, warnings, err := SimulateROI(singleSegment(), scenarios, investment(300, 0.1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 0 || len(warnings) != 0 {
		t.Fatalf("skipped %v warnings %v, want none", skipped, warnings)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3 scenarios", len(results))
	}

	for _, r := range results {
		// ROI must invert exactly back to the projected gain.
		recovered := r.Investment * (r.ROI + 1)
		if math.Abs(recovered-r.ProjectedGain) > 1e-9 {
			t.Errorf("%s: investment*(ROI+1) = %v, want gain %v", r.Scenario, recovered, r.ProjectedGain)
		}
		if math.Abs(r.ProjectedGain-r.ProjectedRevenue*r.UpliftRate) > 1e-9 {
			t.Errorf("%s: gain %v != revenue %v * uplift %v", r.Scenario, r.ProjectedGain, r.ProjectedRevenue, r.UpliftRate)
		}
		if math.Abs(r.BreakEvenRevenue-r.Investment/r.UpliftRate) > 1e-9 {
			t.Errorf("%s: break-even = %v, want %v", r.Scenario, r.BreakEvenRevenue, r.Investment/r.UpliftRate)
		}
	}

	// Base: revenue 6000, gain 600, cost 300 -> ROI = 1.0
	for _, r := range results {
		if r.Scenario == model.ScenarioBase && math.Abs(r.ROI-1.0) > 1e-9 {
			t.Errorf("base ROI = %v, want 1.0", r.ROI)
		}
	}
}

func TestSimulateROI_ScenarioOrderingCarriesThrough(t *testing.T) {
	scenarios := map[int]model.ScenarioSet{0: scenarioFor(0, 1000, 6)}

	results, _, _, err := SimulateROI(singleSegment(), scenarios, investment(300, 0.1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byKind := make(map[model.ScenarioKind]model.ROIResult)
	for _, r := range results {
		byKind[r.Scenario] = r
	}
	if byKind[model.ScenarioWorst].ROI > byKind[model.ScenarioBase].ROI {
		t.Errorf("worst ROI %v > base ROI %v", byKind[model.ScenarioWorst].ROI, byKind[model.ScenarioBase].ROI)
	}
	if byKind[model.ScenarioBase].ROI > byKind[model.ScenarioBest].ROI {
		t.Errorf("base ROI %v > best ROI %v", byKind[model.ScenarioBase].ROI, byKind[model.ScenarioBest].ROI)
	}
}

func TestSimulateROI_ZeroCostRejected(t *testing.T) {
	scenarios := map[int]model.ScenarioSet{0: scenarioFor(0, 1000, 6)}

	_, _, _, err := SimulateROI(singleSegment(), scenarios, investment(0, 0.1))

	var ce *model.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want ConfigurationError", err)
	}
}

func TestSimulateROI_SkipsSegmentWithoutForecast(t *testing.T) {
	segments := []model.Segment{
		{Cluster: 0, CustomerCount: 10},
		{Cluster: 1, CustomerCount: 4},
	}
	scenarios := map[int]model.ScenarioSet{0: scenarioFor(0, 1000, 6)} // cluster 1 missing

	results, skipped, warnings, err := SimulateROI(segments, scenarios, investment(300, 0.1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(skipped) != 1 || skipped[0] != 1 {
		t.Errorf("skipped = %v, want [1]", skipped)
	}
	if len(warnings) != 1 {
		t.Errorf("len(warnings) = %d, want 1", len(warnings))
	}
	for _, r := range results {
		if r.Cluster == 1 {
			t.Errorf("cluster 1 has ROI results despite missing forecast")
		}
	}
}

func TestSimulateMonteCarlo_Deterministic(t *testing.T) {
	scenarios := map[int]model.ScenarioSet{0: scenarioFor(0, 1000, 6)}
	inv := investment(300, 0.1)

	first := SimulateMonteCarlo(singleSegment(), scenarios, inv, 500, 42)
	second := SimulateMonteCarlo(singleSegment(), scenarios, inv, 500, 42)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different Monte Carlo output")
	}
}

func TestSimulateMonteCarlo_QuantilesOrdered(t *testing.T) {
	scenarios := map[int]model.ScenarioSet{0: scenarioFor(0, 1000, 6)}

	out := SimulateMonteCarlo(singleSegment(), scenarios, investment(300, 0.1), 500, 42)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}

	m := out[0]
	if m.P5 > m.P50 || m.P50 > m.P95 {
		t.Errorf("quantiles out of order: P5 %v, P50 %v, P95 %v", m.P5, m.P50, m.P95)
	}
}
