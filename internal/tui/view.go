package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/starrate/internal/dom"
	"github.com/jask/starrate/internal/rating"
)

const maxCardWidth = 64

func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	width := max(1, m.width)
	header := renderBar(m.styles.header, width, " "+m.title, colorMantle)
	status := m.renderStatus(width)
	footer := m.renderFooter(width)

	cardWidth := min(maxCardWidth, max(20, width-4))
	var panels []string
	for _, sel := range []string{m.sel.SelectionPanel, m.sel.ConfirmationPanel} {
		el := m.doc.Find(sel)
		if el == nil || el.HasClass(rating.ClassHidden) {
			continue
		}
		panels = append(panels, m.renderCard(el, cardWidth))
	}
	body := lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(panels, "\n"))

	available := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))
	body = fitHeight(body, available)
	view := strings.Join([]string{header, body, status, footer}, "\n")
	return m.styles.app.Width(width).MaxWidth(width).Render(view)
}

func (m Model) renderCard(panel dom.Element, width int) string {
	style := m.styles.card
	anim := panel.Style("animation")
	switch {
	case strings.HasPrefix(anim, "fadeOut"):
		style = m.styles.cardFade
	case strings.HasPrefix(anim, "fadeIn"):
		style = style.BorderForeground(m.styles.accent)
	}
	inner := width - style.GetHorizontalFrameSize()
	lines := m.renderChildren(panel, inner)
	return style.Width(width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n\n"))
}

func (m Model) renderChildren(el dom.Element, width int) []string {
	var out []string
	for _, c := range el.Children() {
		if c.HasClass(rating.ClassHidden) {
			continue
		}
		if s := m.renderElement(c, width); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (m Model) renderElement(el dom.Element, width int) string {
	switch {
	case el == m.widget.Group():
		return m.renderControls()
	case el == m.widget.SubmitControl():
		if el.Disabled() {
			return m.styles.disabled.Render(el.Text())
		}
		return m.styles.submit.Render(el.Text())
	case el.HasClass("error-message"):
		return m.styles.notice.Width(width).Render("! " + el.Text())
	}

	switch el.Tag() {
	case "h1", "h2", "h3":
		return m.styles.heading.Width(width).Render(el.Text())
	case "p", "span":
		return m.styles.body.Width(width).Render(el.Text())
	}
	if len(el.Children()) > 0 {
		return strings.Join(m.renderChildren(el, width), "\n\n")
	}
	return m.styles.body.Width(width).Render(strings.TrimSpace(el.Text()))
}

func (m Model) renderControls() string {
	controls := m.widget.Controls()
	cells := make([]string, 0, len(controls))
	for i, c := range controls {
		label := strings.TrimSpace(c.Text())
		checked, _ := c.Attr("aria-checked")
		switch {
		case checked == "true":
			cells = append(cells, m.styles.active.Render(label))
		case i == m.focus && m.widget.Panel() == rating.ShowingSelection:
			cells = append(cells, m.styles.focused.Render(label))
		default:
			cells = append(cells, m.styles.control.Render(label))
		}
	}
	return strings.Join(cells, " ")
}

func (m Model) renderStatus(width int) string {
	msg, isErr := m.statusLine()
	if isErr {
		return renderBar(m.styles.statusErr, width, msg, colorSurface0)
	}
	return renderBar(m.styles.status, width, msg, colorSurface0)
}

func (m Model) renderFooter(width int) string {
	space := lipgloss.NewStyle().Background(colorMantle).Render(" ")
	sep := lipgloss.NewStyle().Background(colorMantle).Render("  ")

	var parts []string
	for _, b := range m.keys.HelpBindings(m.scope()) {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, m.styles.key.Render(h.Key)+space+m.styles.helpDesc.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = m.styles.helpDesc.Render("No shortcuts")
	}
	return renderBar(m.styles.footer, width, line, colorMantle)
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}

func fitHeight(s string, h int) string {
	if h <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
