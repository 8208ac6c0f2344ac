package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/einteger/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui theme by
// initTUIStyles.
var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	tableHeaderStyle   lipgloss.Style
	tableCellStyle     lipgloss.Style
	winnerStyle        lipgloss.Style
	failedStyle        lipgloss.Style
	selectedStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	chartBarStyle      lipgloss.Style
	chartEmptyStyle    lipgloss.Style
	sparklineStyle     lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Run calls it again after InitTheme has honored --no-color.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	panelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().Foreground(t.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(t.Accent)

	tableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	tableCellStyle = lipgloss.NewStyle().Foreground(t.Text)

	winnerStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	failedStyle = lipgloss.NewStyle().Foreground(t.Error)

	selectedStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	metricLabelStyle = lipgloss.NewStyle().Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	chartBarStyle = lipgloss.NewStyle().Foreground(t.Accent)
	chartEmptyStyle = lipgloss.NewStyle().Foreground(t.Dim)
	sparklineStyle = lipgloss.NewStyle().Foreground(t.Success)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusPausedStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	cpuSparklineStyle = lipgloss.NewStyle().Foreground(t.Accent)
	memSparklineStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
