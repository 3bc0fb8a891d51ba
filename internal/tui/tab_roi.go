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

func (a App) renderROI(w int) string {
	r := a.result
	t := theme.Active

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var rows strings.Builder
	rows.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %-9s %12s %13s %13s %8s %13s",
		"Cluster", "Scenario", "Investment", "Revenue", "Gain", "ROI", "Break-even")))
	rows.WriteString("\n")
	for _, roi := range r.ROI {
		style := rowStyle
		if roi.ROI < 0 {
			style = lipgloss.NewStyle().Foreground(t.Red)
		}
		rows.WriteString(style.Render(fmt.Sprintf("%-9d %-9s %12s %13s %13s %8s %13s",
			roi.Cluster,
			string(roi.Scenario),
			cli.FormatMoney(roi.Investment),
			cli.FormatMoney(roi.ProjectedRevenue),
			cli.FormatMoney(roi.ProjectedGain),
			cli.FormatROI(roi.ROI),
			cli.FormatMoney(roi.BreakEvenRevenue))))
		rows.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("ROI per segment and scenario", strings.TrimRight(rows.String(), "\n"), w))
	b.WriteString("\n")

	// Gain share gauges, base scenario only.
	var totalGain float64
	for _, roi := range r.ROI {
		if roi.Scenario == model.ScenarioBase && roi.ProjectedGain > 0 {
			totalGain += roi.ProjectedGain
		}
	}
	if totalGain > 0 {
		inner := components.CardInnerWidth(w)
		barW := inner - 18
		if barW > 50 {
			barW = 50
		}
		var gauges strings.Builder
		for _, roi := range r.ROI {
			if roi.Scenario != model.ScenarioBase || roi.ProjectedGain <= 0 {
				continue
			}
			share := roi.ProjectedGain / totalGain
			gauges.WriteString(components.GaugeBar(
				fmt.Sprintf("Cluster %d", roi.Cluster),
				share,
				string(t.Accent),
				10, barW))
			gauges.WriteString("\n")
		}
		b.WriteString(components.ContentCard("Share of projected gain (Base)", strings.TrimRight(gauges.String(), "\n"), w))
		b.WriteString("\n")
	}

	if len(r.MonteCarlo) > 0 {
		var mc strings.Builder
		mc.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %10s %9s %9s %9s",
			"Cluster", "Mean ROI", "P5", "P50", "P95")))
		mc.WriteString("\n")
		for _, m := range r.MonteCarlo {
			mc.WriteString(rowStyle.Render(fmt.Sprintf("%-9d %10s %9s %9s %9s",
				m.Cluster,
				cli.FormatROI(m.Mean),
				cli.FormatROI(m.P5),
				cli.FormatROI(m.P50),
				cli.FormatROI(m.P95))))
			mc.WriteString("\n")
		}
		title := fmt.Sprintf("Monte Carlo (%d draws)", r.MonteCarlo[0].Draws)
		b.WriteString(components.ContentCard(title, strings.TrimRight(mc.String(), "\n"), w))
		b.WriteString("\n")
	}

	if len(r.SkippedSegments) > 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		b.WriteString(dim.Render(fmt.Sprintf("  Segments without a usable forecast: %v", r.SkippedSegments)))
		b.WriteString("\n")
	}

	return b.String()
}
