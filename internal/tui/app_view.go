package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"funnel-cli/internal/drilldown"
)

func (m appModel) View() string {
	if !m.seenWindowSize {
		return "loading…"
	}
	if m.resizing {
		return normalizePane(styleMuted().Render("resizing…"), m.width, m.height)
	}

	base := m.renderBase()
	if m.stack.Len() == 0 {
		return base
	}
	return m.renderLayers(base)
}

func (m appModel) renderBase() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	bodyH := m.height - 2
	if bodyH < 0 {
		bodyH = 0
	}
	body := normalizePane(m.lists[m.activeTab].View(), m.width, bodyH)

	return joinLines(header, body, footer)
}

func (m appModel) renderHeader() string {
	brand := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("funnel")

	var tabs []string
	for i, title := range tabTitles {
		if i == m.activeTab {
			tabs = append(tabs, lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(title))
		} else {
			tabs = append(tabs, styleMuted().Render(title))
		}
	}

	line := brand + "  " + strings.Join(tabs, styleMuted().Render(" · "))
	return normalizePane(line, m.width, 1)
}

func (m appModel) renderFooter() string {
	if m.minibufferText != "" {
		return normalizePane(m.minibufferText, m.width, 1)
	}

	var hint string
	if m.stack.Len() > 0 {
		hint = "↑/↓ select · enter drill in · esc back · 1-9 jump · ctrl+g close all"
	} else {
		hint = "tab switch · enter open · l list · u activity · s stage · f forecast · / filter · q quit"
	}
	return normalizePane(styleMuted().Render(hint), m.width, 1)
}

// renderLayers composites the open drill-down layers over the base screen.
// Layers are painted bottom to top, so paint order is the z-order; the base
// and every covered layer are dimmed, and only the topmost is full size.
func (m appModel) renderLayers(base string) string {
	screen := dimBackground(normalizePane(base, m.width, m.height))

	items := m.stack.Items()
	total := len(items)

	for i, it := range items {
		lv := m.layers[it.ID]
		if lv == nil {
			continue
		}
		style := drilldown.StyleFor(i, total)

		boxW := scaledLayerWidth(m.width, style.Scale)
		inner := boxW - 4
		y := topPadLines + i*(layerPeekRows+1)

		maxRows := m.height - y - 4
		if maxRows < 1 {
			maxRows = 1
		}

		bar := renderBreadcrumbBar(m.stack.TrailFor(i), boxW)
		content := lv.render(inner, maxRows, style.Interactive)
		block := joinLines(bar, renderModalBox(boxW, it.Title, content))
		block = normalizePane(block, boxW, strings.Count(block, "\n")+1)

		if style.Opacity < 1 {
			block = dimBackground(block)
		}

		screen = overlayAt(screen, block, centerX(m.width, boxW), y)
	}

	return screen
}
