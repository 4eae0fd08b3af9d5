package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	accent lipgloss.Color

	app       lipgloss.Style
	header    lipgloss.Style
	card      lipgloss.Style
	cardFade  lipgloss.Style
	heading   lipgloss.Style
	body      lipgloss.Style
	control   lipgloss.Style
	active    lipgloss.Style
	focused   lipgloss.Style
	submit    lipgloss.Style
	disabled  lipgloss.Style
	notice    lipgloss.Style
	status    lipgloss.Style
	statusErr lipgloss.Style
	footer    lipgloss.Style
	key       lipgloss.Style
	helpDesc  lipgloss.Style
}

func newStyles(accent lipgloss.Color) styles {
	return styles{
		accent: accent,

		app:    lipgloss.NewStyle().Foreground(colorText),
		header: lipgloss.NewStyle().Foreground(accent).Background(colorMantle).Bold(true),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2),
		cardFade: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFaded).
			Foreground(colorFaded).
			Padding(1, 2),
		heading: lipgloss.NewStyle().Foreground(colorText).Bold(true),
		body:    lipgloss.NewStyle().Foreground(colorMuted),
		control: lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurface0).
			Padding(0, 1),
		active: lipgloss.NewStyle().
			Foreground(colorMantle).
			Background(accent).
			Bold(true).
			Padding(0, 1),
		focused: lipgloss.NewStyle().
			Foreground(colorFocus).
			Background(colorSurface1).
			Underline(true).
			Padding(0, 1),
		submit: lipgloss.NewStyle().
			Foreground(colorMantle).
			Background(accent).
			Bold(true).
			Padding(0, 2),
		disabled: lipgloss.NewStyle().
			Foreground(colorFaded).
			Background(colorSurface0).
			Padding(0, 2),
		notice:    lipgloss.NewStyle().Foreground(colorError),
		status:    lipgloss.NewStyle().Foreground(colorSuccess).Background(colorSurface0),
		statusErr: lipgloss.NewStyle().Foreground(colorError).Background(colorSurface0),
		footer:    lipgloss.NewStyle().Background(colorMantle),
		key:       lipgloss.NewStyle().Foreground(accent).Bold(true).Background(colorMantle),
		helpDesc:  lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle),
	}
}
