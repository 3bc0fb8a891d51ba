package components

import (
	"fmt"
	"math"
	"strings"

	"revscope/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(sparkBlocks[idx])
	}

	return style.Render(buf.String())
}

// BarChart renders a vertical bar chart with a labeled y-axis.
// Labels, when provided, must align one-to-one with values.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	ceiling := niceCeiling(maxVal)
	yLabelW := len(formatChartLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	n := len(values)
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := (chartW - (n-1)*gap) / n
	if barW < 1 {
		barW = 1
		gap = 0
	}
	if barW > 6 {
		barW = 6
	}
	axisLen := n*barW + (n-1)*gap
	if axisLen < 0 {
		axisLen = 0
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	barStyle := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(height)
		rowBottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = formatChartLabel(ceiling)
		} else if row == height/2 {
			label = formatChartLabel(ceiling / 2)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 7 {
					idx = 7
				}
				if idx < 0 {
					idx = 0
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(sparkBlocks[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yLabelW+1))
		b.WriteString(axisStyle.Render(spreadLabels(labels, barW, gap, axisLen)))
	}

	return b.String()
}

// spreadLabels lays x-axis labels under their bars, dropping any that
// would overlap an earlier one.
func spreadLabels(labels []string, barW, gap, axisLen int) string {
	buf := make([]byte, axisLen)
	for i := range buf {
		buf[i] = ' '
	}
	lastEnd := -2
	for i, lbl := range labels {
		pos := i * (barW + gap)
		end := pos + len(lbl)
		if pos <= lastEnd+1 || end > axisLen {
			continue
		}
		copy(buf[pos:end], lbl)
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

// niceCeiling rounds maxVal up to 1, 2, or 5 times a power of ten.
func niceCeiling(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(maxVal))
	base := math.Pow(10, exp)
	frac := maxVal / base

	switch {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.0fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
