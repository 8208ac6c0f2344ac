package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences for terminal output.
type Theme struct {
	Name      string
	Primary   string // headings, operation names
	Secondary string // labels, separators
	Success   string
	Warning   string
	Error     string
	Info      string
	Number    string // evaluated results
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Number:    "\033[38;5;208m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Number:    "\033[38;5;94m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme is selected by --no-color or NO_COLOR.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme is the lipgloss palette of the benchmark dashboard.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#3A7BD5"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
	}

	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name ("dark", "light", "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	switch strings.ToLower(name) {
	case "light":
		currentTheme = LightTheme
	case "none", "off":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme picks the startup theme. Colors are disabled when noColor is
// set or the NO_COLOR environment variable exists (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// Colorize wraps s in the given color and a reset, or returns s unchanged
// when color is empty.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + GetCurrentTheme().Reset
}
