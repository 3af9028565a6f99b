package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color scheme. The escape codes color the plain terminal
// output; TUI holds the matching dashboard palette.
type Theme struct {
	// Name is the identifier accepted by -theme.
	Name string
	// Primary highlights headings and keyword names.
	Primary string
	// Secondary is used for labels and less prominent text.
	Secondary string
	// Success marks matching counts and saved reports.
	Success string
	// Warning marks skipped files.
	Warning string
	// Error marks mismatches and failed runs.
	Error string
	// Info is used for timings and the speedup.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string

	TUI TUITheme
}

// TUITheme holds lipgloss colors for the dashboard panels.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

const (
	bold      = "\033[1m"
	underline = "\033[4m"
	reset     = "\033[0m"
)

var (
	// DarkTUITheme is the dashboard palette for dark terminals: cyan panels
	// with amber warnings.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#0B0F14"),
		Text:    lipgloss.Color("#D8DEE9"),
		Border:  lipgloss.Color("#2AA198"),
		Accent:  lipgloss.Color("#38D5C8"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#E0AF68"),
		Error:   lipgloss.Color("#F7768E"),
		Dim:     lipgloss.Color("#5C6773"),
		Info:    lipgloss.Color("#7AA2F7"),
	}

	// LightTUITheme is the dashboard palette for light terminals.
	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#FAFAFA"),
		Text:    lipgloss.Color("#2E3440"),
		Border:  lipgloss.Color("#00796B"),
		Accent:  lipgloss.Color("#00897B"),
		Success: lipgloss.Color("#2E7D32"),
		Warning: lipgloss.Color("#B26A00"),
		Error:   lipgloss.Color("#C62828"),
		Dim:     lipgloss.Color("#8A8F98"),
		Info:    lipgloss.Color("#1565C0"),
	}

	// NoColorTUITheme renders the dashboard with the terminal's default
	// colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}

	// DarkTheme is the default, tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;44m",  // Cyan
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;214m", // Amber
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;111m", // Light blue
		Bold:      bold,
		Underline: underline,
		Reset:     reset,
		TUI:       DarkTUITheme,
	}

	// LightTheme uses darker colors that stay readable on light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;30m",  // Teal
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Brown
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;25m",  // Dark blue
		Bold:      bold,
		Underline: underline,
		Reset:     reset,
		TUI:       LightTUITheme,
	}

	// NoColorTheme disables all color output. It is selected by -no-color,
	// the NO_COLOR environment variable, or -theme none.
	NoColorTheme = Theme{Name: "none", TUI: NoColorTUITheme}

	themes = []Theme{DarkTheme, LightTheme, NoColorTheme}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the accepted theme names, default first.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// LookupTheme returns the theme called name.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// HasTheme reports whether name is a known theme.
func HasTheme(name string) bool {
	_, ok := LookupTheme(name)
	return ok
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the dashboard palette of the active theme.
func GetCurrentTUITheme() TUITheme {
	return GetCurrentTheme().TUI
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme called name. Unknown names select the dark
// theme.
func SetTheme(name string) {
	t, ok := LookupTheme(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme activates the theme called name unless colors are disabled,
// either by noColor or by a NO_COLOR environment variable
// (https://no-color.org/), in which case NoColorTheme wins.
func InitTheme(name string, noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(name)
}
