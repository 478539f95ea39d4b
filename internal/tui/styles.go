package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the search screen.
type Styles struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Table   lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4B4B")).MarginBottom(1),
		Prompt:  lipgloss.NewStyle().Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#E6B800")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Table:   lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
	}
}
