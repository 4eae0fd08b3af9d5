package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette: true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorMuted   = colorSubtext0
	colorFaded   = colorOverlay0
	colorBorder  = colorSurface1
)

var accents = map[string]lipgloss.Color{
	"pink":     colorPink,
	"mauve":    colorMauve,
	"peach":    colorPeach,
	"yellow":   colorYellow,
	"green":    colorGreen,
	"teal":     colorTeal,
	"sky":      colorSky,
	"blue":     colorBlue,
	"lavender": colorLavender,
}

// AccentColor resolves a palette name, falling back to pink.
func AccentColor(name string) lipgloss.Color {
	if c, ok := accents[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return colorPink
}
