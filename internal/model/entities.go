// Package model defines domain types for the revscope pipeline.
package model

import "time"

// Transaction is one raw purchase event for a customer.
type Transaction struct {
	ID         string
	CustomerID string
	Date       time.Time
	Amount     float64
}

// CustomerRecord groups the cleaned transaction history of one customer.
type CustomerRecord struct {
	CustomerID   string
	Transactions []Transaction
}

// RFMFeatures holds the per-customer segmentation features.
// Recency is measured in days before the dataset reference date.
type RFMFeatures struct {
	CustomerID  string
	RecencyDays int
	Frequency   int
	Monetary    float64 // total spend
	AvgSpend    float64
}

// Segment is one customer cluster with its centroid statistics.
type Segment struct {
	Cluster        int
	CustomerIDs    []string
	CustomerCount  int
	AvgRecency     float64
	AvgFrequency   float64
	AvgMonetary    float64
	TotalMonetary  float64
	DecisionAction string
}

// ForecastPoint is one period of a forecast with its confidence bounds.
type ForecastPoint struct {
	Period time.Time
	Point  float64
	Lower  float64
	Upper  float64
}

// ForecastSeries is an ordered, contiguous forecast over a fixed horizon.
type ForecastSeries struct {
	SeriesID   string // "aggregate" or "segment-<n>"
	Confidence float64
	Points     []ForecastPoint
}

// ScenarioKind names one of the three forecast variants.
type ScenarioKind string

const (
	ScenarioBest  ScenarioKind = "Best"
	ScenarioBase  ScenarioKind = "Base"
	ScenarioWorst ScenarioKind = "Worst"
)

// Scenarios in presentation order.
var ScenarioKinds = []ScenarioKind{ScenarioBest, ScenarioBase, ScenarioWorst}

// ScenarioSet holds the base forecast and its Best/Worst variants,
// aligned period by period.
type ScenarioSet struct {
	SeriesID string
	Base     ForecastSeries
	Best     []float64
	Worst    []float64
}

// Series returns the point estimates for one scenario kind.
func (s ScenarioSet) Series(kind ScenarioKind) []float64 {
	switch kind {
	case ScenarioBest:
		return s.Best
	case ScenarioWorst:
		return s.Worst
	default:
		base := make([]float64, len(s.Base.Points))
		for i, p := range s.Base.Points {
			base[i] = p.Point
		}
		return base
	}
}

// ROIResult is the simulated return for one (segment, scenario) pair.
type ROIResult struct {
	Cluster          int
	Scenario         ScenarioKind
	Investment       float64
	UpliftRate       float64
	ProjectedRevenue float64
	ProjectedGain    float64
	ROI              float64
	BreakEvenRevenue float64
}

// MonteCarloROI summarizes a seeded ROI simulation for one segment.
type MonteCarloROI struct {
	Cluster int
	Draws   int
	Seed    int64
	Mean    float64
	P5      float64
	P50     float64
	P95     float64
}

// RiskMetric is the per-period downside exposure of Worst vs Base.
type RiskMetric struct {
	Period       time.Time
	BaseValue    float64
	WorstValue   float64
	Shortfall    float64 // Base - Worst
	ShortfallPct float64 // Shortfall / Base
	VaRLower     float64 // Base - Lower_CI
}

// Sensitivity reports how segment ROI responds to one perturbed input.
// Parameter is always named so figures cannot be misattributed.
type Sensitivity struct {
	Cluster    int
	Parameter  string // "investment_cost" or "uplift_rate"
	DeltaPct   float64
	ROILow     float64
	ROIHigh    float64
	Elasticity float64
}

// RunResult is the complete output of one pipeline run.
type RunResult struct {
	RunID     string
	CreatedAt time.Time
	Reference time.Time // reference date used for recency

	Customers    int
	Transactions int

	Features  []RFMFeatures
	Segments  []Segment
	Aggregate ScenarioSet
	PerSegment map[int]ScenarioSet

	ROI         []ROIResult
	MonteCarlo  []MonteCarloROI
	Risk        []RiskMetric
	Sensitivity []Sensitivity

	// Segments that had configured investments but no usable forecast.
	SkippedSegments []int

	Warnings []Warning
}
