package tui

import (
	"strconv"
	"strings"

	"funnel-cli/internal/drilldown"

	"github.com/charmbracelet/lipgloss"
)

// renderBreadcrumbBar renders the trail for one layer. Every crumb except the
// last carries its jump key (1..9) and invokes popTo when pressed; the last
// crumb is the layer's own title, bold and not actionable. Only the topmost
// layer's bar actually receives keys; covered bars are rendered for context.
func renderBreadcrumbBar(trail []drilldown.Item, width int) string {
	if len(trail) == 0 {
		return ""
	}

	sep := styleMuted().Render(" › ")
	crumb := styleMuted()
	last := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)

	parts := make([]string, 0, len(trail))
	for i, it := range trail {
		label := it.Title
		if i == len(trail)-1 {
			parts = append(parts, last.Render(label))
			continue
		}
		key := ""
		if i < 9 {
			key = strconv.Itoa(i+1) + " "
		}
		parts = append(parts, crumb.Render(key+label))
	}
	return normalizePane(strings.Join(parts, sep), width, 1)
}
