package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	aliveStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	deadStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(1, 0)
)

// AliveIndicator renders a styled alive/dead status indicator.
func AliveIndicator(alive bool) string {
	if alive {
		return aliveStyle.Render("● running")
	}
	return deadStyle.Render("○ exited")
}
