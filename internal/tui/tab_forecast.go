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

func (a App) renderForecast(w int) string {
	r := a.result
	t := theme.Active

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var rows strings.Builder
	rows.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %13s %13s %13s %13s %13s",
		"Month", "Worst", "Base", "Best", "Lower CI", "Upper CI")))
	rows.WriteString("\n")
	for i, p := range r.Aggregate.Base.Points {
		rows.WriteString(rowStyle.Render(fmt.Sprintf("%-10s %13s %13s %13s ",
			p.Period.Format("Jan 2006"),
			cli.FormatMoney(r.Aggregate.Worst[i]),
			cli.FormatMoney(p.Point),
			cli.FormatMoney(r.Aggregate.Best[i]))))
		rows.WriteString(dimStyle.Render(fmt.Sprintf("%13s %13s",
			cli.FormatMoney(p.Lower),
			cli.FormatMoney(p.Upper))))
		rows.WriteString("\n")
	}

	title := fmt.Sprintf("Aggregate forecast (%.0f%% CI)", r.Aggregate.Base.Confidence*100)

	var b strings.Builder
	b.WriteString(components.ContentCard(title, strings.TrimRight(rows.String(), "\n"), w))
	b.WriteString("\n")

	// Scenario trend lines as stacked sparklines.
	var lines strings.Builder
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	for _, kind := range model.ScenarioKinds {
		values := r.Aggregate.Series(kind)
		color := t.Accent
		switch kind {
		case model.ScenarioBest:
			color = t.Green
		case model.ScenarioWorst:
			color = t.Red
		}
		lines.WriteString(labelStyle.Render(fmt.Sprintf("%-6s ", string(kind))))
		lines.WriteString(components.Sparkline(values, color))
		lines.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Scenario trends", strings.TrimRight(lines.String(), "\n"), w))
	b.WriteString("\n")

	return b.String()
}
