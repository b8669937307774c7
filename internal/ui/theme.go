package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Border    lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Mnemonic  lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Selected  lipgloss.Style
	AppName   lipgloss.Style
	Footer    lipgloss.Style
}

var DefaultTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Label:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#CDD6F4")),
	Hint:      lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Mnemonic:  lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#F9E2AF")),
	Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
	ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
	Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#F9E2AF")),
	AppName:   lipgloss.NewStyle().Foreground(lipgloss.Color("#89DCEB")),
	Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("#94E2D5")),
}
