package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#a6e3a1"
	colorLink    lipgloss.Color = "#89b4fa"
	colorError   lipgloss.Color = "#f38ba8"
	colorSurface lipgloss.Color = "#313244"
	colorMantle  lipgloss.Color = "#181825"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	statStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	statValue  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	labelStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	selectStyle       = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	selectActiveStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Background(colorSurface).
				Bold(true).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	cardNameStyle        = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	cardPlaceholderStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	cardInfoStyle        = lipgloss.NewStyle().Foreground(colorText)
	cardBioStyle         = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	cardLinkStyle        = lipgloss.NewStyle().Foreground(colorLink)
	skillTagStyle        = lipgloss.NewStyle().Foreground(colorMantle).Background(colorAccent).Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3)
	emptyErrTitle = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
	statusStyle   = lipgloss.NewStyle().Foreground(colorAccent)
)
