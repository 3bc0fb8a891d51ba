package pipeline

import (
	"revscope/internal/model"
)

// ScenarioOptions holds the deterministic Best/Worst adjustments.
type ScenarioOptions struct {
	BestGrowth    float64 // multiplicative uplift on the point forecast
	WorstDrawdown float64 // multiplicative haircut on the point forecast
	IntervalBias  float64 // 0..1 blend toward the confidence bound
}

// BuildScenarios derives the Best and Worst variants from a base
// forecast. Both are pure functions of the base series and the options:
//
//	Best_t  = Base_t*(1+growth)  + bias*(Upper_t - Base_t)
//	Worst_t = Base_t*(1-drawdown) - bias*(Base_t - Lower_t)
//
// clamped so that Worst_t <= Base_t <= Best_t holds at every period.
func BuildScenarios(base model.ForecastSeries, opts ScenarioOptions) model.ScenarioSet {
	set := model.ScenarioSet{
		SeriesID: base.SeriesID,
		Base:     base,
		Best:     make([]float64, len(base.Points)),
		Worst:    make([]float64, len(base.Points)),
	}

	for i, p := range base.Points {
		best := p.Point*(1+opts.BestGrowth) + opts.IntervalBias*(p.Upper-p.Point)
		worst := p.Point*(1-opts.WorstDrawdown) - opts.IntervalBias*(p.Point-p.Lower)

		if best < p.Point {
			best = p.Point
		}
		if worst > p.Point {
			worst = p.Point
		}

		set.Best[i] = best
		set.Worst[i] = worst
	}

	return set
}
