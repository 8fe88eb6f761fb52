// Package ui provides terminal output styling and rendering helpers.
package ui

import "github.com/charmbracelet/lipgloss"

// defaultAccent is a soft purple used for paths and highlights.
const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths, entity names, highlights.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, line numbers.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis.
	Bold = lipgloss.NewStyle().Bold(true)
)

var accentColor = defaultAccent

// ConfigureTheme overrides the accent color. Accepts ANSI color codes
// ("0" to "255") or hex colors ("#RRGGBB"); an empty value keeps the default.
func ConfigureTheme(accent string) {
	if accent == "" {
		return
	}
	accentColor = accent
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
}

// AccentColor returns the configured accent color.
func AccentColor() string {
	return accentColor
}
