package components

import (
	"fmt"

	"revscope/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForRisk maps a downside fraction to a severity color.
func ColorForRisk(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.30:
		return string(t.Red)
	case pct >= 0.20:
		return string(t.Orange)
	case pct >= 0.10:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// GaugeBar renders a labeled horizontal gauge with a percentage readout.
// fill is a color hex or ANSI code; pct is clamped to [0, 1].
func GaugeBar(label string, pct float64, fill string, labelW, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(fill),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(fill)).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " +
		bar.ViewAs(pct) +
		" " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
