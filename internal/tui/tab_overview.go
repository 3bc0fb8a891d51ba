package tui

import (
	"fmt"
	"strings"

	"revscope/internal/cli"
	"revscope/internal/model"
	"revscope/internal/tui/components"
	"revscope/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverview(w int) string {
	r := a.result
	t := theme.Active

	var baseRevenue, bestRevenue float64
	base := r.Aggregate.Series(model.ScenarioBase)
	for _, v := range base {
		baseRevenue += v
	}
	for _, v := range r.Aggregate.Series(model.ScenarioBest) {
		bestRevenue += v
	}

	var totalGain, roiSum float64
	var roiCount int
	for _, roi := range r.ROI {
		if roi.Scenario != model.ScenarioBase {
			continue
		}
		totalGain += roi.ProjectedGain
		roiSum += roi.ROI
		roiCount++
	}
	avgROI := 0.0
	if roiCount > 0 {
		avgROI = roiSum / float64(roiCount)
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Customers", cli.FormatNumber(int64(r.Customers)), fmt.Sprintf("%s transactions", cli.FormatNumber(int64(r.Transactions)))},
		{"Segments", fmt.Sprintf("%d", len(r.Segments)), "RFM clusters"},
		{"Projected Revenue", cli.FormatMoney(baseRevenue), cli.FormatDelta(bestRevenue, baseRevenue) + " best case"},
		{"Avg ROI", cli.FormatROI(avgROI), cli.FormatMoney(totalGain) + " gain"},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(cards, w))
	b.WriteString("\n")

	if len(base) > 0 {
		inner := components.CardInnerWidth(w)
		chart := components.BarChart(base, monthLabels(r.Aggregate.Base.Points), t.Accent, inner, 8)
		b.WriteString(components.ContentCard("Base revenue forecast", chart, w))
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
		b.WriteString(warnStyle.Render(fmt.Sprintf("  %d data warnings (see `revscope run` output)", len(r.Warnings))))
		b.WriteString("\n")
	}

	return b.String()
}

func monthLabels(points []model.ForecastPoint) []string {
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Period.Format("Jan")
	}
	return labels
}
