package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// footerSparkWidth is the number of samples shown per system sparkline.
const footerSparkWidth = 12

// FooterModel renders the status, system CPU and memory, and key help.
type FooterModel struct {
	help       help.Model
	keys       KeyMap
	cpuHistory *Series
	memHistory *Series
	paused     bool
	done       bool
	err        bool
	width      int
}

// NewFooterModel creates a footer for keys.
func NewFooterModel(keys KeyMap) FooterModel {
	h := help.New()
	h.Styles.ShortKey = statusDoneStyle
	h.Styles.ShortDesc = metricLabelStyle
	h.Styles.ShortSeparator = metricLabelStyle
	return FooterModel{
		help:       h,
		keys:       keys,
		cpuHistory: NewSeries(footerSparkWidth),
		memHistory: NewSeries(footerSparkWidth),
	}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// SetPaused, SetDone and SetError update the status indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }
func (f *FooterModel) SetDone(d bool)   { f.done = d }
func (f *FooterModel) SetError(e bool)  { f.err = e }

// UpdateSysStats records a system-wide sample.
func (f *FooterModel) UpdateSysStats(cpuPct, memPct float64) {
	f.cpuHistory.Push(cpuPct)
	f.memHistory.Push(memPct)
}

// Reset clears the status, keeping the system history.
func (f *FooterModel) Reset() {
	f.paused = false
	f.done = false
	f.err = false
}

func (f FooterModel) status() string {
	switch {
	case f.err:
		return statusErrorStyle.Render("● Error")
	case f.done:
		return statusDoneStyle.Render("● Done")
	case f.paused:
		return statusPausedStyle.Render("● Paused")
	}
	return statusRunningStyle.Render("● Running")
}

// View renders the footer line.
func (f FooterModel) View() string {
	pipe := metricLabelStyle.Render(" | ")
	sys := fmt.Sprintf("%s %s %s%s%s %s %s",
		metricLabelStyle.Render("CPU"),
		cpuSparklineStyle.Render(Sparkline(f.cpuHistory.Values())),
		metricValueStyle.Render(fmt.Sprintf("%4.1f%%", f.cpuHistory.Last())),
		pipe,
		metricLabelStyle.Render("MEM"),
		memSparklineStyle.Render(Sparkline(f.memHistory.Values())),
		metricValueStyle.Render(fmt.Sprintf("%4.1f%%", f.memHistory.Last())))

	left := " " + f.status() + pipe + sys + pipe
	keys := f.help.ShortHelpView(f.keys.ShortHelp())
	line := left + keys
	if gap := f.width - lipgloss.Width(line); gap > 0 {
		line += strings.Repeat(" ", gap)
	}
	return line
}
