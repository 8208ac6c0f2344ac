package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/einteger/internal/format"
	"github.com/agbru/einteger/internal/orchestration"
)

// Column widths of the timing table.
const (
	colWidthWords  = 8
	colWidthTiming = 11
)

// sweepRow holds the timings of every algorithm at one size.
type sweepRow struct {
	Words     int
	Durations []time.Duration // indexed like TableModel.algos
	Failed    []bool
	Winner    int // index of the fastest successful algorithm, -1 if none
}

// TableModel renders sizes down and algorithms across.
type TableModel struct {
	algos    []string
	rows     []sweepRow
	current  int // size being measured, 0 when idle
	selected int
	offset   int
	width    int
	height   int
}

// NewTableModel creates a table for the given algorithm names.
func NewTableModel(algos []string) TableModel {
	return TableModel{algos: algos}
}

// SetSize updates dimensions.
func (t *TableModel) SetSize(w, h int) {
	t.width = w
	t.height = h
}

// SetCurrent marks the size being measured.
func (t *TableModel) SetCurrent(words int) {
	t.current = words
}

// Select highlights the algorithm column i.
func (t *TableModel) Select(i int) {
	t.selected = i
}

// AddResults records the timings of one size and returns the new row.
func (t *TableModel) AddResults(words int, results []orchestration.CalculationResult) sweepRow {
	row := sweepRow{
		Words:     words,
		Durations: make([]time.Duration, len(t.algos)),
		Failed:    make([]bool, len(t.algos)),
		Winner:    -1,
	}
	for _, r := range results {
		i := t.indexOf(r.Name)
		if i < 0 {
			continue
		}
		if r.Err != nil {
			row.Failed[i] = true
			continue
		}
		row.Durations[i] = r.Duration
		if row.Winner < 0 || r.Duration < row.Durations[row.Winner] {
			row.Winner = i
		}
	}
	t.rows = append(t.rows, row)
	t.current = 0
	// Follow the newest row.
	if visible := t.visibleRows(); len(t.rows) > visible {
		t.offset = len(t.rows) - visible
	}
	return row
}

// MarkFailed flags every algorithm at words as failed when no row exists.
func (t *TableModel) MarkFailed(words int) {
	for i := range t.rows {
		if t.rows[i].Words == words {
			return
		}
	}
	row := sweepRow{Words: words, Durations: make([]time.Duration, len(t.algos)), Failed: make([]bool, len(t.algos)), Winner: -1}
	for i := range row.Failed {
		row.Failed[i] = true
	}
	t.rows = append(t.rows, row)
	t.current = 0
}

// Scroll moves the view by delta rows.
func (t *TableModel) Scroll(delta int) {
	maxOffset := max(len(t.rows)-t.visibleRows(), 0)
	t.offset = min(max(t.offset+delta, 0), maxOffset)
}

// Reset clears every row.
func (t *TableModel) Reset() {
	t.rows = nil
	t.current = 0
	t.offset = 0
}

// Rows returns the number of measured sizes.
func (t TableModel) Rows() int { return len(t.rows) }

func (t TableModel) indexOf(name string) int {
	for i, a := range t.algos {
		if a == name {
			return i
		}
	}
	return -1
}

// visibleRows is the number of data rows fitting the panel: borders,
// title, blank line and column header take five lines.
func (t TableModel) visibleRows() int {
	return max(t.height-5, 1)
}

// View renders the timing table.
func (t TableModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Timings"))
	b.WriteString("\n\n")

	cells := []string{padLeft("limbs", colWidthWords)}
	for i, a := range t.algos {
		style := tableHeaderStyle
		if i == t.selected {
			style = selectedStyle.Underline(true)
		}
		cells = append(cells, style.Render(padLeft(a, colWidthTiming)))
	}
	b.WriteString(tableHeaderStyle.Render(cells[0]) + strings.Join(cells[1:], ""))

	end := min(t.offset+t.visibleRows(), len(t.rows))
	for _, row := range t.rows[t.offset:end] {
		b.WriteString("\n")
		b.WriteString(t.renderRow(row))
	}
	if t.current > 0 {
		b.WriteString("\n")
		b.WriteString(tableCellStyle.Render(padLeft(fmt.Sprint(t.current), colWidthWords)))
		b.WriteString(metricLabelStyle.Render(padLeft("measuring...", colWidthTiming*2)))
	}

	return panelStyle.
		Width(max(t.width-2, 0)).
		Height(max(t.height-2, 0)).
		Render(b.String())
}

func (t TableModel) renderRow(row sweepRow) string {
	var b strings.Builder
	b.WriteString(tableCellStyle.Render(padLeft(fmt.Sprint(row.Words), colWidthWords)))
	for i := range t.algos {
		switch {
		case row.Failed[i]:
			b.WriteString(failedStyle.Render(padLeft("failed", colWidthTiming)))
		case i == row.Winner:
			b.WriteString(winnerStyle.Render(padLeft(format.FormatExecutionDuration(row.Durations[i]), colWidthTiming)))
		default:
			b.WriteString(tableCellStyle.Render(padLeft(format.FormatExecutionDuration(row.Durations[i]), colWidthTiming)))
		}
	}
	return b.String()
}

// padLeft right-aligns s in a field of width cells.
func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
