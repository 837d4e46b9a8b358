package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Warning styling
	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454")).
			Bold(true)

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	// Help text styling
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

// NewHuhTheme returns the huh form theme used by the interactive prompts.
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeCharm()
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	theme.Focused.FocusedButton = theme.Focused.FocusedButton.Background(lipgloss.Color("#7D56F4"))
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("#888888"))
	return theme
}
