// Package tui provides the interactive Bubble Tea dashboard for revscope.
package tui

import (
	"fmt"
	"strings"

	"revscope/internal/config"
	"revscope/internal/model"
	"revscope/internal/tui/components"
	"revscope/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// resultMsg is sent when the analysis finishes loading.
type resultMsg struct {
	result *model.RunResult
	err    error
}

// App is the root Bubble Tea model.
type App struct {
	result  *model.RunResult
	loaded  bool
	loadErr error

	width     int
	height    int
	activeTab int
	showHelp  bool

	spinner spinner.Model
	loadFn  func() (*model.RunResult, error)
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
)

// Run starts the dashboard. loadFn supplies the run result, typically
// either a fresh pipeline execution or the latest stored run.
func Run(loadFn func() (*model.RunResult, error), cfg config.Config) error {
	theme.SetActive(cfg.Appearance.Theme)

	p := tea.NewProgram(NewApp(loadFn), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// NewApp builds the initial application model.
func NewApp(loadFn func() (*model.RunResult, error)) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		spinner: sp,
		loadFn:  loadFn,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCmd())
}

func (a App) loadCmd() tea.Cmd {
	fn := a.loadFn
	return func() tea.Msg {
		result, err := fn()
		return resultMsg{result: result, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case resultMsg:
		a.loaded = true
		a.result = msg.result
		a.loadErr = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if a.showHelp && msg.String() != "ctrl+c" {
			a.showHelp = false
			return a, nil
		}
		return a, tea.Quit

	case "?":
		a.showHelp = !a.showHelp
		return a, nil

	case "tab", "right", "l":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil

	case "shift+tab", "left", "h":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		r := msg.Runes[0]
		if r >= '1' && r <= '5' {
			idx := int(r - '1')
			if idx < len(components.Tabs) {
				a.activeTab = idx
			}
			return a, nil
		}
		if idx := components.TabIdxByKey(r); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	return a, nil
}

// contentWidth is the usable width for tab content, capped for
// readability on very wide terminals.
func (a App) contentWidth() int {
	w := a.width
	if w > maxContentWidth {
		w = maxContentWidth
	}
	return w
}

func (a App) View() string {
	if a.width > 0 && a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Padding(2, 2)
	return style.Render(fmt.Sprintf("Terminal too narrow (%d cols).\nRevscope needs at least %d columns.", a.width, minTerminalWidth))
}

func (a App) viewLoading() string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	return "\n\n  " + a.spinner.View() + label.Render(" Running analysis...") + "\n"
}

func (a App) viewError() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("  Analysis failed"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("  " + a.loadErr.Error()))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("  [q] quit"))
	return b.String()
}

func (a App) viewHelp() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	rows := []struct{ key, desc string }{
		{"tab / shift+tab", "next / previous tab"},
		{"1-5, o s f r k", "jump to tab"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Keyboard shortcuts"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-18s", r.key)))
		b.WriteString(descStyle.Render(r.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(descStyle.Render("  Press ? or esc to close"))
	return b.String()
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.contentWidth()

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	header := titleStyle.Render(" revscope") +
		lipgloss.NewStyle().Foreground(t.TextDim).Render("  revenue decision intelligence")

	var body string
	switch a.activeTab {
	case 0:
		body = a.renderOverview(w)
	case 1:
		body = a.renderSegments(w)
	case 2:
		body = a.renderForecast(w)
	case 3:
		body = a.renderROI(w)
	case 4:
		body = a.renderRisk(w)
	}

	runLabel := ""
	if a.result != nil && len(a.result.RunID) >= 8 {
		runLabel = a.result.RunID[:8] + " · " + a.result.CreatedAt.Format("2006-01-02 15:04")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(components.RenderTabBar(a.activeTab))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(a.width, runLabel))
	return b.String()
}
