package pipeline

import (
	"revscope/internal/config"
	"revscope/internal/model"
)

// Perturbation size used for sensitivity analysis.
const sensitivityDelta = 0.10

// AnalyzeRisk computes per-period downside exposure from the aggregate
// scenario set: the Worst-vs-Base shortfall and the gap to the lower
// confidence bound (a value-at-risk style figure).
func AnalyzeRisk(set model.ScenarioSet) []model.RiskMetric {
	metrics := make([]model.RiskMetric, 0, len(set.Base.Points))

	for i, p := range set.Base.Points {
		shortfall := p.Point - set.Worst[i]
		pct := 0.0
		if p.Point != 0 {
			pct = shortfall / p.Point
		}
		metrics = append(metrics, model.RiskMetric{
			Period:       p.Period,
			BaseValue:    p.Point,
			WorstValue:   set.Worst[i],
			Shortfall:    shortfall,
			ShortfallPct: pct,
			VaRLower:     p.Point - p.Lower,
		})
	}

	return metrics
}

// AnalyzeSensitivity perturbs each segment's investment cost and uplift
// rate by ±10% and reports the ROI response. Every figure names the
// parameter it belongs to.
//
// Elasticity is the relative ROI change per relative parameter change,
// centered on the base assumption.
func AnalyzeSensitivity(
	segments []model.Segment,
	scenarios map[int]model.ScenarioSet,
	inv config.InvestmentConfig,
) []model.Sensitivity {
	var out []model.Sensitivity

	for _, seg := range segments {
		set, ok := scenarios[seg.Cluster]
		if !ok || len(set.Base.Points) == 0 {
			continue
		}
		assumption, ok := inv.InvestmentFor(seg.Cluster)
		if !ok || assumption.Cost <= 0 || assumption.Uplift <= 0 {
			continue
		}

		base := roiFor(seg.Cluster, model.ScenarioBase, set, assumption)

		costLow := assumption
		costLow.Cost *= 1 - sensitivityDelta
		costHigh := assumption
		costHigh.Cost *= 1 + sensitivityDelta
		out = append(out, sensitivityFor(seg.Cluster, "investment_cost", base.ROI,
			roiFor(seg.Cluster, model.ScenarioBase, set, costLow).ROI,
			roiFor(seg.Cluster, model.ScenarioBase, set, costHigh).ROI))

		upLow := assumption
		upLow.Uplift *= 1 - sensitivityDelta
		upHigh := assumption
		upHigh.Uplift *= 1 + sensitivityDelta
		out = append(out, sensitivityFor(seg.Cluster, "uplift_rate", base.ROI,
			roiFor(seg.Cluster, model.ScenarioBase, set, upLow).ROI,
			roiFor(seg.Cluster, model.ScenarioBase, set, upHigh).ROI))
	}

	return out
}

func sensitivityFor(cluster int, parameter string, baseROI, lowROI, highROI float64) model.Sensitivity {
	elasticity := 0.0
	if baseROI != 0 {
		elasticity = ((highROI - lowROI) / baseROI) / (2 * sensitivityDelta)
	}
	return model.Sensitivity{
		Cluster:    cluster,
		Parameter:  parameter,
		DeltaPct:   sensitivityDelta,
		ROILow:     lowROI,
		ROIHigh:    highROI,
		Elasticity: elasticity,
	}
}
