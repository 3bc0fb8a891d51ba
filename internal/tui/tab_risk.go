package tui

import (
	"fmt"
	"strings"

	"revscope/internal/cli"
	"revscope/internal/tui/components"
	"revscope/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderRisk(w int) string {
	r := a.result
	t := theme.Active

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	inner := components.CardInnerWidth(w)
	barW := inner - 28
	if barW > 40 {
		barW = 40
	}

	// Monthly downside exposure with severity gauges.
	var gauges strings.Builder
	for _, rm := range r.Risk {
		gauges.WriteString(components.GaugeBar(
			rm.Period.Format("Jan 2006"),
			rm.ShortfallPct,
			components.ColorForRisk(rm.ShortfallPct),
			9, barW))
		gauges.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render(
			fmt.Sprintf("  %s at risk", cli.FormatMoney(rm.Shortfall))))
		gauges.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Downside exposure (Worst vs Base)", strings.TrimRight(gauges.String(), "\n"), w))
	b.WriteString("\n")

	var rows strings.Builder
	rows.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %-17s %9s %9s %11s",
		"Cluster", "Parameter", "ROI Low", "ROI High", "Elasticity")))
	rows.WriteString("\n")
	for _, s := range r.Sensitivity {
		rows.WriteString(rowStyle.Render(fmt.Sprintf("%-9d %-17s %9s %9s %11s",
			s.Cluster,
			s.Parameter,
			cli.FormatROI(s.ROILow),
			cli.FormatROI(s.ROIHigh),
			cli.FormatFloat(s.Elasticity))))
		rows.WriteString("\n")
	}
	b.WriteString(components.ContentCard("ROI sensitivity (±10% input shift)", strings.TrimRight(rows.String(), "\n"), w))
	b.WriteString("\n")

	return b.String()
}
