// Package ui holds the color themes shared by the eintcalc CLI, REPL and
// dashboard. ANSI themes color plain terminal output; TUITheme carries the
// lipgloss palette for the bubbletea dashboard.
package ui
