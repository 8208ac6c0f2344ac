package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/einteger/internal/format"
)

// MetricsModel displays runtime memory statistics and sweep throughput.
type MetricsModel struct {
	alloc        uint64
	heapInuse    uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	rss          uint64
	speed        float64 // sweep progress per second
	lastProgress float64
	lastUpdate   time.Time
	lastWords    int
	bestRate     float64 // limbs per second of the latest winner
	bestName     string
	width        int
	height       int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{lastUpdate: time.Now()}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapInuse = msg.HeapInuse
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateRSS records the resident set of the process.
func (m *MetricsModel) UpdateRSS(rss uint64) {
	m.rss = rss
}

// UpdateProgress folds a new overall progress value into the smoothed
// speed. Samples closer than 50ms apart are ignored.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0.05 {
		return
	}
	if dp := progress - m.lastProgress; dp > 0 {
		instant := dp / dt
		if m.speed > 0 {
			m.speed = 0.7*m.speed + 0.3*instant
		} else {
			m.speed = instant
		}
	}
	m.lastProgress = progress
	m.lastUpdate = now
}

// UpdateWinner records the fastest algorithm of the latest size.
func (m *MetricsModel) UpdateWinner(name string, words int, d time.Duration) {
	m.bestName = name
	m.lastWords = words
	if d > 0 {
		m.bestRate = float64(words) / d.Seconds()
	}
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render("Metrics"))
	rows.WriteString("\n")

	colWidth := (m.width - 6) / 2
	sweepETA := "-"
	if m.speed > 0 {
		sweepETA = format.FormatETA(time.Duration((1 - m.lastProgress) / m.speed * float64(time.Second)))
	}
	winner := "-"
	if m.bestName != "" {
		winner = fmt.Sprintf("%s @%d", m.bestName, m.lastWords)
	}

	left := []string{
		formatMetricCol("Memory:", format.FormatBytes(m.alloc), colWidth),
		formatMetricCol("GC Runs:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6), colWidth),
		formatMetricCol("Speed:", sweepETA+" left", colWidth),
	}
	right := []string{
		formatMetricCol("Heap:", format.FormatBytes(m.heapInuse), colWidth),
		formatMetricCol("Goroutines:", fmt.Sprint(m.numGoroutine), colWidth),
		formatMetricCol("Winner:", winner, colWidth),
	}
	for i := range left {
		rows.WriteString("\n")
		rows.WriteString(left[i])
		rows.WriteString(right[i])
	}
	rate := "-"
	if m.bestRate > 0 {
		rate = formatRate(m.bestRate)
	}
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Limbs/s:", rate, colWidth))
	rows.WriteString(formatMetricCol("RSS:", format.FormatBytes(m.rss), colWidth))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

// formatRate renders a per-second rate with a metric suffix.
func formatRate(r float64) string {
	switch {
	case r >= 1e9:
		return fmt.Sprintf("%.2fG", r/1e9)
	case r >= 1e6:
		return fmt.Sprintf("%.2fM", r/1e6)
	case r >= 1e3:
		return fmt.Sprintf("%.2fK", r/1e3)
	}
	return fmt.Sprintf("%.0f", r)
}
