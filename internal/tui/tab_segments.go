package tui

import (
	"fmt"
	"strings"

	"revscope/internal/cli"
	"revscope/internal/tui/components"
	"revscope/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSegments(w int) string {
	r := a.result
	t := theme.Active

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	actionStyle := lipgloss.NewStyle().Foreground(t.Accent)

	var rows strings.Builder
	rows.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %10s %12s %11s %12s %14s  %s",
		"Cluster", "Customers", "Recency (d)", "Frequency", "Avg Spend", "Total Spend", "Action")))
	rows.WriteString("\n")
	for _, seg := range r.Segments {
		rows.WriteString(rowStyle.Render(fmt.Sprintf("%-9d %10s %12.1f %11.1f %12s %14s  ",
			seg.Cluster,
			cli.FormatNumber(int64(seg.CustomerCount)),
			seg.AvgRecency,
			seg.AvgFrequency,
			cli.FormatMoney(seg.AvgMonetary),
			cli.FormatMoney(seg.TotalMonetary))))
		rows.WriteString(actionStyle.Render(seg.DecisionAction))
		rows.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Customer segments", strings.TrimRight(rows.String(), "\n"), w))
	b.WriteString("\n")

	// Revenue contribution by segment.
	values := make([]float64, len(r.Segments))
	labels := make([]string, len(r.Segments))
	for i, seg := range r.Segments {
		values[i] = seg.TotalMonetary
		labels[i] = fmt.Sprintf("C%d", seg.Cluster)
	}
	inner := components.CardInnerWidth(w)
	chart := components.BarChart(values, labels, t.Blue, inner, 7)
	b.WriteString(components.ContentCard("Revenue by segment", chart, w))
	b.WriteString("\n")

	return b.String()
}
