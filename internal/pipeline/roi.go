package pipeline

import (
	"fmt"
	"math/rand"
	"sort"

	"revscope/internal/config"
	"revscope/internal/model"
)

// SimulateROI computes return on investment per (segment, scenario).
//
// Segments without forecast data are excluded and reported through the
// returned skipped list and warnings, never silently zeroed. A missing
// or non-positive investment assumption is a ConfigurationError.
func SimulateROI(
	segments []model.Segment,
	scenarios map[int]model.ScenarioSet,
	inv config.InvestmentConfig,
) (results []model.ROIResult, skipped []int, warnings []model.Warning, err error) {
	for _, seg := range segments {
		set, ok := scenarios[seg.Cluster]
		if !ok || len(set.Base.Points) == 0 {
			skipped = append(skipped, seg.Cluster)
			warnings = append(warnings, model.Warning{
				Stage:   "roi",
				Ref:     fmt.Sprintf("segment-%d", seg.Cluster),
				Message: "no forecast data, excluded from ROI simulation",
			})
			continue
		}

		assumption, ok := inv.InvestmentFor(seg.Cluster)
		if !ok {
			return nil, nil, nil, &model.ConfigurationError{
				Field:  fmt.Sprintf("investment.segments.%d", seg.Cluster),
				Reason: "no investment assumption configured and no default set",
			}
		}
		if assumption.Cost <= 0 {
			return nil, nil, nil, &model.ConfigurationError{
				Field:  fmt.Sprintf("investment.segments.%d.cost", seg.Cluster),
				Reason: fmt.Sprintf("must be positive, got %g", assumption.Cost),
			}
		}
		if assumption.Uplift <= 0 {
			return nil, nil, nil, &model.ConfigurationError{
				Field:  fmt.Sprintf("investment.segments.%d.uplift", seg.Cluster),
				Reason: fmt.Sprintf("must be positive, got %g", assumption.Uplift),
			}
		}

		for _, kind := range model.ScenarioKinds {
			results = append(results, roiFor(seg.Cluster, kind, set, assumption))
		}
	}

	return results, skipped, warnings, nil
}

// roiFor applies ROI = (gain - cost) / cost to one scenario's revenue.
func roiFor(cluster int, kind model.ScenarioKind, set model.ScenarioSet, a config.SegmentInvestment) model.ROIResult {
	var revenue float64
	for _, v := range set.Series(kind) {
		revenue += v
	}

	gain := revenue * a.Uplift
	return model.ROIResult{
		Cluster:          cluster,
		Scenario:         kind,
		Investment:       a.Cost,
		UpliftRate:       a.Uplift,
		ProjectedRevenue: revenue,
		ProjectedGain:    gain,
		ROI:              (gain - a.Cost) / a.Cost,
		BreakEvenRevenue: a.Cost / a.Uplift,
	}
}

// Relative spread of the sampled uplift rate around its configured value.
const mcUpliftSpread = 0.2

// SimulateMonteCarlo draws uplift rates around each segment's configured
// assumption and summarizes the resulting base-scenario ROI distribution.
// All randomness flows from the explicit seed.
func SimulateMonteCarlo(
	segments []model.Segment,
	scenarios map[int]model.ScenarioSet,
	inv config.InvestmentConfig,
	draws int,
	seed int64,
) []model.MonteCarloROI {
	rng := rand.New(rand.NewSource(seed))

	var out []model.MonteCarloROI
	for _, seg := range segments {
		set, ok := scenarios[seg.Cluster]
		if !ok || len(set.Base.Points) == 0 {
			continue
		}
		assumption, ok := inv.InvestmentFor(seg.Cluster)
		if !ok || assumption.Cost <= 0 {
			continue
		}

		var revenue float64
		for _, v := range set.Series(model.ScenarioBase) {
			revenue += v
		}

		rois := make([]float64, draws)
		var sum float64
		for i := 0; i < draws; i++ {
			uplift := assumption.Uplift * (1 + mcUpliftSpread*rng.NormFloat64())
			if uplift < 0 {
				uplift = 0
			}
			gain := revenue * uplift
			rois[i] = (gain - assumption.Cost) / assumption.Cost
			sum += rois[i]
		}
		sort.Float64s(rois)

		out = append(out, model.MonteCarloROI{
			Cluster: seg.Cluster,
			Draws:   draws,
			Seed:    seed,
			Mean:    sum / float64(draws),
			P5:      quantile(rois, 0.05),
			P50:     quantile(rois, 0.50),
			P95:     quantile(rois, 0.95),
		})
	}

	return out
}

// quantile reads the q-th quantile from a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}
