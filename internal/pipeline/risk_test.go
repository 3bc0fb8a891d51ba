package pipeline

import (
	"math"
	"testing"

	"revscope/internal/model"
)

func TestAnalyzeRisk_ShortfallPerPeriod(t *testing.T) {
	set := BuildScenarios(testBaseSeries(), ScenarioOptions{WorstDrawdown: 0.1})

	metrics := AnalyzeRisk(set)
	if len(metrics) != len(set.Base.Points) {
		t.Fatalf("len(metrics) = %d, want %d", len(metrics), len(set.Base.Points))
	}

	for i, m := range metrics {
		p := set.Base.Points[i]
		if math.Abs(m.Shortfall-(p.Point-set.Worst[i])) > 1e-9 {
			t.Errorf("period %d: Shortfall = %v, want %v", i, m.Shortfall, p.Point-set.Worst[i])
		}
		if math.Abs(m.ShortfallPct-m.Shortfall/p.Point) > 1e-9 {
			t.Errorf("period %d: ShortfallPct = %v, want %v", i, m.ShortfallPct, m.Shortfall/p.Point)
		}
		if math.Abs(m.VaRLower-(p.Point-p.Lower)) > 1e-9 {
			t.Errorf("period %d: VaRLower = %v, want %v", i, m.VaRLower, p.Point-p.Lower)
		}
	}
}

func TestAnalyzeSensitivity_NamedParameters(t *testing.T) {
	scenarios := map[int]model.ScenarioSet{0: scenarioFor(0, 1000, 6)}

	out := AnalyzeSensitivity(singleSegment(), scenarios, investment(300, 0.1))
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 (cost and uplift)", len(out))
	}

	params := map[string]bool{}
	for _, s := range out {
		params[s.Parameter] = true
		if s.DeltaPct != 0.10 {
			t.Errorf("%s: DeltaPct = %v, want 0.10", s.Parameter, s.DeltaPct)
		}
	}
	if !params["investment_cost"] || !params["uplift_rate"] {
		t.Errorf("parameters = %v, want investment_cost and uplift_rate", params)
	}
}

func TestAnalyzeSensitivity_DirectionOfResponse(t *testing.T) {
	scenarios := map[int]model.ScenarioSet{0: scenarioFor(0, 1000, 6)}

	out := AnalyzeSensitivity(singleSegment(), scenarios, investment(300, 0.1))

	for _, s := range out {
		switch s.Parameter {
		case "investment_cost":
			// Cheaper investment means higher ROI.
			if s.ROILow <= s.ROIHigh {
				t.Errorf("cost: ROI at -10%% (%v) should exceed ROI at +10%% (%v)", s.ROILow, s.ROIHigh)
			}
		case "uplift_rate":
			// Stronger uplift means higher ROI.
			if s.ROILow >= s.ROIHigh {
				t.Errorf("uplift: ROI at +10%% (%v) should exceed ROI at -10%% (%v)", s.ROIHigh, s.ROILow)
			}
		}
	}
}

func TestAnalyzeSensitivity_SkipsMissingForecast(t *testing.T) {
	segments := []model.Segment{{Cluster: 3}}
	out := AnalyzeSensitivity(segments, map[int]model.ScenarioSet{}, investment(300, 0.1))
	if len(out) != 0 {
		t.Errorf("len(out) = %d, want 0 for segment without forecast", len(out))
	}
}
