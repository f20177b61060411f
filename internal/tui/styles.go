package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#B5651D")
	muted   = lipgloss.Color("#777777")
	success = lipgloss.Color("#2E8B57")
	danger  = lipgloss.Color("#C0392B")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1)
	subtleStyle   = lipgloss.NewStyle().Foreground(muted)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	normalStyle   = lipgloss.NewStyle()
	scoreStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(success)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	paneStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
)
