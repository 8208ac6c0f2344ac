package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/einteger/internal/format"
)

// sparkLabelWidth is the room taken by the name and percentage around an
// algorithm sparkline.
const sparkLabelWidth = 22

// ChartModel shows how fast each algorithm is relative to the winner at
// every swept size: 100% means fastest.
type ChartModel struct {
	algos    []string
	speed    []*Series
	selected int
	progress float64
	eta      time.Duration
	done     bool
	elapsed  time.Duration
	width    int
	height   int
}

// NewChartModel creates a chart for the given algorithm names.
func NewChartModel(algos []string) ChartModel {
	speed := make([]*Series, len(algos))
	for i := range speed {
		speed[i] = NewSeries(32)
	}
	return ChartModel{algos: algos, speed: speed}
}

// SetSize updates dimensions and resizes the history buffers.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if n := w - sparkLabelWidth; n > 0 {
		for _, rb := range c.speed {
			rb.Resize(n)
		}
	}
}

// AddRow pushes the relative speed of every algorithm at one size.
// Failed algorithms score zero.
func (c *ChartModel) AddRow(row sweepRow) {
	for i, rb := range c.speed {
		if row.Winner < 0 || i >= len(row.Failed) || row.Failed[i] || row.Durations[i] <= 0 {
			rb.Push(0)
			continue
		}
		rb.Push(float64(row.Durations[row.Winner]) / float64(row.Durations[i]) * 100)
	}
}

// SetProgress records the overall sweep progress in [0, 1].
func (c *ChartModel) SetProgress(progress float64, eta time.Duration) {
	c.progress = min(max(progress, 0), 1)
	c.eta = eta
}

// Select chooses the algorithm drawn in the detail chart.
func (c *ChartModel) Select(i int) {
	c.selected = i
}

// SetDone freezes the progress bar at the final elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
	c.progress = 1
}

// Reset clears the histories.
func (c *ChartModel) Reset() {
	for _, rb := range c.speed {
		rb.Reset()
	}
	c.progress = 0
	c.eta = 0
	c.done = false
	c.elapsed = 0
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Relative Speed"))
	b.WriteString("\n")
	if bar := c.renderProgressBar(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, name := range c.algos {
		label := metricLabelStyle.Render(fmt.Sprintf("  %-10s", name))
		if i == c.selected {
			label = selectedStyle.Render(fmt.Sprintf("▸ %-10s", name))
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(sparklineStyle.Render(Sparkline(c.speed[i].Values())))
		if c.speed[i].Len() > 0 {
			b.WriteString(metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", c.speed[i].Last())))
		}
		b.WriteString("\n")
	}

	// Detail chart of the selected algorithm when there is room for it.
	used := 4 + len(c.algos) + 2
	if rows := c.height - used - 1; rows >= 2 && c.selected < len(c.speed) {
		b.WriteString("\n")
		for _, line := range BrailleChart(c.speed[c.selected].Values(), max(c.width-6, 1), rows) {
			b.WriteString("  ")
			b.WriteString(chartBarStyle.Render(line))
			b.WriteString("\n")
		}
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(strings.TrimRight(b.String(), "\n"))
}

// renderProgressBar renders the sweep progress, or "" when too narrow.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 36
	if barWidth < 10 {
		return ""
	}
	filled := int(c.progress * float64(barWidth))
	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	suffix := "ETA: " + format.FormatETA(c.eta)
	if c.done {
		suffix = "in " + format.FormatExecutionDuration(c.elapsed)
	}
	return fmt.Sprintf("  %s %5.1f%% %s", bar, c.progress*100, metricLabelStyle.Render(suffix))
}
