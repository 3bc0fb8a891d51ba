package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"revscope/internal/config"
	"revscope/internal/model"
	"revscope/internal/source"

	"github.com/google/uuid"
)

// ProgressFunc is called as each pipeline stage starts.
type ProgressFunc func(stage string)

// Stage names reported through ProgressFunc, in execution order.
var Stages = []string{"prepare", "segment", "forecast", "scenario", "roi", "risk"}

// Run executes the full pipeline on loaded transactions.
//
// The aggregate revenue series must be forecastable; a failure there
// aborts the run with series context. Per-segment series that cannot be
// fitted (usually insufficient history) downgrade to warnings and the
// affected segments are excluded from ROI, reported via SkippedSegments.
func Run(cfg config.Config, load *source.LoadResult, progressFn ProgressFunc) (*model.RunResult, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	report := func(stage string) {
		if progressFn != nil {
			progressFn(stage)
		}
	}

	var referenceOverride time.Time
	if cfg.Input.ReferenceDate != "" {
		t, err := time.Parse("2006-01-02", cfg.Input.ReferenceDate)
		if err != nil {
			return nil, &model.ConfigurationError{
				Field:  "input.reference_date",
				Reason: fmt.Sprintf("unparsable date %q", cfg.Input.ReferenceDate),
			}
		}
		referenceOverride = t
	}

	report("prepare")
	prep, err := Prepare(load.Transactions, referenceOverride)
	if err != nil {
		return nil, err
	}

	result := &model.RunResult{
		RunID:        uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Reference:    prep.Reference,
		Customers:    len(prep.Customers),
		Transactions: len(prep.Transactions),
		PerSegment:   make(map[int]model.ScenarioSet),
	}
	result.Warnings = append(result.Warnings, load.Warnings...)
	result.Warnings = append(result.Warnings, prep.Warnings...)

	report("segment")
	result.Features = ComputeRFM(prep)
	segments, err := SegmentCustomers(result.Features, SegmentOptions{
		Clusters: cfg.Segmentation.Clusters,
		Seed:     cfg.Segmentation.Seed,
		MaxIter:  cfg.Segmentation.MaxIter,
	})
	if err != nil {
		return nil, err
	}
	result.Segments = segments

	report("forecast")
	fopts := ForecastOptions{
		Horizon:        cfg.Forecast.HorizonMonths,
		Confidence:     cfg.Forecast.Confidence,
		SeasonalPeriod: cfg.Forecast.SeasonalPeriod,
		MinCycles:      cfg.Forecast.MinCycles,
	}

	months, values := MonthlyRevenue(prep.Transactions)
	aggregate, err := Forecast("aggregate", months, values, fopts)
	if err != nil {
		return nil, err
	}

	segmentForecasts, forecastWarnings := forecastSegments(prep, segments, fopts)
	result.Warnings = append(result.Warnings, forecastWarnings...)

	report("scenario")
	sopts := ScenarioOptions{
		BestGrowth:    cfg.Scenario.BestGrowth,
		WorstDrawdown: cfg.Scenario.WorstDrawdown,
		IntervalBias:  cfg.Scenario.IntervalBias,
	}
	result.Aggregate = BuildScenarios(aggregate, sopts)
	for cluster, series := range segmentForecasts {
		result.PerSegment[cluster] = BuildScenarios(series, sopts)
	}

	report("roi")
	roi, skipped, roiWarnings, err := SimulateROI(segments, result.PerSegment, cfg.Investment)
	if err != nil {
		return nil, err
	}
	result.ROI = roi
	result.SkippedSegments = skipped
	result.Warnings = append(result.Warnings, roiWarnings...)

	if cfg.Scenario.MonteCarlo {
		result.MonteCarlo = SimulateMonteCarlo(segments, result.PerSegment,
			cfg.Investment, cfg.Scenario.Draws, cfg.Scenario.Seed)
	}

	report("risk")
	result.Risk = AnalyzeRisk(result.Aggregate)
	result.Sensitivity = AnalyzeSensitivity(segments, result.PerSegment, cfg.Investment)

	return result, nil
}

// forecastSegments fits each segment's revenue series on a bounded
// worker pool. Results are reassembled keyed by cluster label, so the
// output is deterministic regardless of completion order.
func forecastSegments(prep *PrepResult, segments []model.Segment, opts ForecastOptions) (map[int]model.ForecastSeries, []model.Warning) {
	byCustomer := make(map[string][]model.Transaction, len(prep.Customers))
	for _, c := range prep.Customers {
		byCustomer[c.CustomerID] = c.Transactions
	}

	type fitResult struct {
		series model.ForecastSeries
		err    error
	}
	results := make([]fitResult, len(segments))

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(segments) {
		numWorkers = len(segments)
	}

	work := make(chan int, len(segments))
	for i := range segments {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				seg := segments[idx]
				var txns []model.Transaction
				for _, id := range seg.CustomerIDs {
					txns = append(txns, byCustomer[id]...)
				}
				months, values := MonthlyRevenue(txns)
				series, err := Forecast(fmt.Sprintf("segment-%d", seg.Cluster), months, values, opts)
				results[idx] = fitResult{series: series, err: err}
			}
		}()
	}
	wg.Wait()

	forecasts := make(map[int]model.ForecastSeries, len(segments))
	var warnings []model.Warning
	for i, seg := range segments {
		if results[i].err != nil {
			warnings = append(warnings, model.Warning{
				Stage:   "forecast",
				Ref:     fmt.Sprintf("segment-%d", seg.Cluster),
				Message: results[i].err.Error(),
			})
			continue
		}
		forecasts[seg.Cluster] = results[i].series
	}

	return forecasts, warnings
}
