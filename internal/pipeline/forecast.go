package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goarima/sarima"
	"github.com/sartorproj/goarima/timeseries"

	"revscope/internal/model"
)

// ForecastOptions controls the seasonal revenue forecaster.
type ForecastOptions struct {
	Horizon        int
	Confidence     float64
	SeasonalPeriod int
	MinCycles      int
}

// Forecast fits a seasonal ARIMA model to a contiguous monthly revenue
// series and projects it `Horizon` periods ahead with confidence bounds.
// With two or more full cycles of history the fit is
// SARIMA(1,1,1)(0,1,1)[m]; a single cycle cannot support seasonal
// differencing, so the seasonal terms drop to (0,0,0) and the fit is a
// plain ARIMA(1,1,1).
//
// History shorter than MinCycles full seasonal cycles is an
// InsufficientHistoryError, never a degenerate forecast.
func Forecast(seriesID string, months []time.Time, values []float64, opts ForecastOptions) (model.ForecastSeries, error) {
	m := opts.SeasonalPeriod
	required := opts.MinCycles * m
	if len(values) < required || len(values) < m {
		return model.ForecastSeries{}, &model.InsufficientHistoryError{
			SeriesID: seriesID,
			Periods:  len(values),
			Required: max(required, m),
		}
	}

	mdl := seasonalModel(len(values), m)
	if err := mdl.Fit(timeseries.New(values)); err != nil {
		return model.ForecastSeries{}, &model.ComputationError{
			SeriesID: seriesID,
			Stage:    "forecast",
			Cause:    fmt.Errorf("sarima fit: %w", err),
		}
	}

	forecasts, lower, upper, err := mdl.PredictWithInterval(opts.Horizon, opts.Confidence)
	if err != nil {
		return model.ForecastSeries{}, &model.ComputationError{
			SeriesID: seriesID,
			Stage:    "forecast",
			Cause:    fmt.Errorf("sarima predict: %w", err),
		}
	}

	last := months[len(months)-1]
	series := model.ForecastSeries{
		SeriesID:   seriesID,
		Confidence: opts.Confidence,
		Points:     make([]model.ForecastPoint, 0, opts.Horizon),
	}
	for h := 1; h <= opts.Horizon; h++ {
		point := forecasts[h-1]
		if math.IsNaN(point) || math.IsInf(point, 0) {
			return model.ForecastSeries{}, &model.ComputationError{
				SeriesID: seriesID,
				Stage:    "forecast",
				Cause:    fmt.Errorf("non-finite point estimate at step %d", h),
			}
		}
		series.Points = append(series.Points, model.ForecastPoint{
			Period: last.AddDate(0, h, 0),
			Point:  point,
			Lower:  lower[h-1],
			Upper:  upper[h-1],
		})
	}

	return series, nil
}

// seasonalModel picks the SARIMA order the available history can
// support. Seasonal differencing needs at least two full cycles.
func seasonalModel(n, period int) *sarima.Model {
	if n >= 2*period {
		return sarima.New(1, 1, 1, 0, 1, 1, period)
	}
	return sarima.New(1, 1, 1, 0, 0, 0, period)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
