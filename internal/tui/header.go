package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/einteger/internal/format"
)

// HeaderModel is the title bar. It shows the swept operation, the operand
// size being measured and the time since the sweep started.
type HeaderModel struct {
	title   string
	op      string
	words   int
	started time.Time
	stopped time.Time
	width   int
}

// NewHeaderModel starts the elapsed clock.
func NewHeaderModel(version, op string) HeaderModel {
	title := "EInteger Bench"
	if version != "" && version != "dev" {
		title += " " + version
	}
	return HeaderModel{title: title, op: op, started: time.Now()}
}

// SetWords records the operand size currently measured.
func (h *HeaderModel) SetWords(words int) { h.words = words }

func (h *HeaderModel) SetDone() { h.stopped = time.Now() }

func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Reset restarts the clock for a new sweep.
func (h *HeaderModel) Reset() {
	h.started, h.stopped, h.words = time.Now(), time.Time{}, 0
}

// Elapsed is frozen once the sweep is done.
func (h HeaderModel) Elapsed() time.Duration {
	end := h.stopped
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(h.started)
}

func (h HeaderModel) View() string {
	sep := versionStyle.Render(" | ")
	parts := []string{
		titleStyle.Render(h.title),
		versionStyle.Render("op: ") + elapsedStyle.Render(h.op),
	}
	if h.words > 0 {
		parts = append(parts, versionStyle.Render("size: ")+elapsedStyle.Render(fmt.Sprintf("%d limbs", h.words)))
	}
	parts = append(parts, elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed())))
	line := strings.Join(parts, sep)

	pad := max(h.width-2-lipgloss.Width(line), 0)
	return headerStyle.Width(h.width).Render(line + strings.Repeat(" ", pad))
}
