// Package report builds the published output tables and writes them to
// CSV, JSON, or XLSX files with stable, documented column names.
package report

import (
	"fmt"
	"strconv"

	"revscope/internal/model"
)

// Table is one named output table with a fixed header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Dates in exported tables are day-first, matching the upstream
// dashboard's expectations.
const dateLayout = "02/01/2006"

// SegmentTable builds the segment decision summary.
func SegmentTable(r *model.RunResult) Table {
	t := Table{
		Name:   "segments",
		Header: []string{"Cluster", "Customer_Count", "Avg_Recency", "Avg_Frequency", "Avg_Monetary", "Total_Monetary", "Decision_Action"},
	}
	for _, seg := range r.Segments {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(seg.Cluster),
			strconv.Itoa(seg.CustomerCount),
			formatFloat(seg.AvgRecency),
			formatFloat(seg.AvgFrequency),
			formatFloat(seg.AvgMonetary),
			formatFloat(seg.TotalMonetary),
			seg.DecisionAction,
		})
	}
	return t
}

// ForecastTable builds the scenario forecast table for the aggregate series.
func ForecastTable(r *model.RunResult) Table {
	t := Table{
		Name:   "forecast",
		Header: []string{"Date", "Base_Forecast", "Best_Case", "Worst_Case", "Lower_CI", "Upper_CI"},
	}
	for i, p := range r.Aggregate.Base.Points {
		t.Rows = append(t.Rows, []string{
			p.Period.Format(dateLayout),
			formatFloat(p.Point),
			formatFloat(r.Aggregate.Best[i]),
			formatFloat(r.Aggregate.Worst[i]),
			formatFloat(p.Lower),
			formatFloat(p.Upper),
		})
	}
	return t
}

// ROITable builds the per-(segment, scenario) ROI simulation results.
func ROITable(r *model.RunResult) Table {
	t := Table{
		Name:   "roi",
		Header: []string{"Segment", "Scenario", "Investment", "Projected_Gain", "ROI", "BreakEven_Revenue"},
	}
	for _, res := range r.ROI {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(res.Cluster),
			string(res.Scenario),
			formatFloat(res.Investment),
			formatFloat(res.ProjectedGain),
			formatFloat(res.ROI),
			formatFloat(res.BreakEvenRevenue),
		})
	}
	return t
}

// RiskTable builds the per-period downside exposure table.
func RiskTable(r *model.RunResult) Table {
	t := Table{
		Name:   "risk",
		Header: []string{"Date", "Base_Value", "Worst_Value", "Shortfall", "Shortfall_Pct", "VaR_Lower"},
	}
	for _, rm := range r.Risk {
		t.Rows = append(t.Rows, []string{
			rm.Period.Format(dateLayout),
			formatFloat(rm.BaseValue),
			formatFloat(rm.WorstValue),
			formatFloat(rm.Shortfall),
			formatFloat(rm.ShortfallPct),
			formatFloat(rm.VaRLower),
		})
	}
	return t
}

// SensitivityTable builds the named-parameter sensitivity table.
func SensitivityTable(r *model.RunResult) Table {
	t := Table{
		Name:   "sensitivity",
		Header: []string{"Segment", "Parameter", "Delta_Pct", "ROI_Low", "ROI_High", "Elasticity"},
	}
	for _, sen := range r.Sensitivity {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(sen.Cluster),
			sen.Parameter,
			formatFloat(sen.DeltaPct),
			formatFloat(sen.ROILow),
			formatFloat(sen.ROIHigh),
			formatFloat(sen.Elasticity),
		})
	}
	return t
}

// AllTables returns every published table for a run.
func AllTables(r *model.RunResult) []Table {
	return []Table{
		SegmentTable(r),
		ForecastTable(r),
		ROITable(r),
		RiskTable(r),
		SensitivityTable(r),
	}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
