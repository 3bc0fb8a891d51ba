package pipeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"revscope/internal/model"
)

func monthSeries(start time.Time, values []float64) []time.Time {
	months := make([]time.Time, len(values))
	for i := range values {
		months[i] = start.AddDate(0, i, 0)
	}
	return months
}

func defaultForecastOpts() ForecastOptions {
	return ForecastOptions{
		Horizon:        6,
		Confidence:     0.95,
		SeasonalPeriod: 12,
		MinCycles:      1,
	}
}

func TestForecast_FlatSeriesStaysFlat(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = 1000
	}
	months := monthSeries(day(2023, 1, 1), values)

	series, err := Forecast("aggregate", months, values, defaultForecastOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(series.Points) != 6 {
		t.Fatalf("len(Points) = %d, want 6", len(series.Points))
	}
	for i, p := range series.Points {
		if math.Abs(p.Point-1000) > 5 {
			t.Errorf("Points[%d].Point = %v, want ~1000", i, p.Point)
		}
	}
}

func TestForecast_ContiguousHorizon(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = 1000 + 200*math.Sin(2*math.Pi*float64(i)/12) + 5*float64(i)
	}
	months := monthSeries(day(2022, 1, 1), values)

	series, err := Forecast("aggregate", months, values, defaultForecastOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := months[len(months)-1]
	for i, p := range series.Points {
		want := last.AddDate(0, i+1, 0)
		if !p.Period.Equal(want) {
			t.Errorf("Points[%d].Period = %v, want %v", i, p.Period, want)
		}
	}
}

func TestForecast_BoundsBracketPointAndWiden(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = 1000 + 200*math.Sin(2*math.Pi*float64(i)/12) + 30*float64(i%3)
	}
	months := monthSeries(day(2022, 1, 1), values)

	series, err := Forecast("aggregate", months, values, defaultForecastOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, p := range series.Points {
		if p.Lower > p.Point || p.Point > p.Upper {
			t.Errorf("Points[%d]: want Lower <= Point <= Upper, got %v / %v / %v",
				i, p.Lower, p.Point, p.Upper)
		}
	}

	firstWidth := series.Points[0].Upper - series.Points[0].Lower
	lastWidth := series.Points[5].Upper - series.Points[5].Lower
	if lastWidth < firstWidth {
		t.Errorf("interval width shrank with horizon: first %v, last %v", firstWidth, lastWidth)
	}
}

func TestForecast_InsufficientHistory(t *testing.T) {
	values := []float64{100, 120, 90, 110, 95}
	months := monthSeries(day(2024, 1, 1), values)

	_, err := Forecast("segment-2", months, values, defaultForecastOpts())

	var ihe *model.InsufficientHistoryError
	if !errors.As(err, &ihe) {
		t.Fatalf("error = %v, want InsufficientHistoryError", err)
	}
	if ihe.SeriesID != "segment-2" {
		t.Errorf("SeriesID = %q, want segment-2", ihe.SeriesID)
	}
	if ihe.Periods != 5 {
		t.Errorf("Periods = %d, want 5", ihe.Periods)
	}
	if ihe.Required != 12 {
		t.Errorf("Required = %d, want 12", ihe.Required)
	}
}

func TestForecast_TrendContinues(t *testing.T) {
	// Steady 10/month growth with a seasonal swing; the fit should
	// project continued growth past the last observation.
	values := make([]float64, 24)
	for i := range values {
		values[i] = 1000 + 10*float64(i) + 50*math.Sin(2*math.Pi*float64(i)/12) + 20*float64(i%5)
	}
	months := monthSeries(day(2022, 1, 1), values)

	series, err := Forecast("aggregate", months, values, defaultForecastOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if series.Points[5].Point <= values[len(values)-1] {
		t.Errorf("forecast %v did not continue upward trend past %v",
			series.Points[5].Point, values[len(values)-1])
	}
}

func TestForecast_SingleCycleProducesFullHorizon(t *testing.T) {
	values := []float64{900, 950, 1000, 1100, 1200, 1150, 1050, 1000, 980, 1020, 1080, 1140}
	months := monthSeries(day(2024, 1, 1), values)

	series, err := Forecast("segment-0", months, values, defaultForecastOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Points) != 6 {
		t.Fatalf("len(Points) = %d, want 6", len(series.Points))
	}
	for i, p := range series.Points {
		if math.IsNaN(p.Point) || math.IsInf(p.Point, 0) {
			t.Errorf("Points[%d].Point = %v, want finite", i, p.Point)
		}
		if p.Lower > p.Point || p.Point > p.Upper {
			t.Errorf("Points[%d]: want Lower <= Point <= Upper, got %v / %v / %v",
				i, p.Lower, p.Point, p.Upper)
		}
	}
}
