package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"funnel-cli/internal/drilldown"
)

// layerView is the per-layer state the TUI keeps for every item on the stack,
// keyed by the item's id. A covered layer stays mounted: its content and
// cursor survive untouched underneath newer layers and reappear as-is when
// the layers above it are popped. Views are pruned only when their item
// leaves the stack.
type layerView struct {
	content layerContent
	// idx is the selected row (into content.rows); off is the first visible
	// content line, counting body lines before rows.
	idx int
	off int
}

func newLayerView(content layerContent) *layerView {
	return &layerView{content: content}
}

func (lv *layerView) moveUp() {
	if lv.idx > 0 {
		lv.idx--
	}
}

func (lv *layerView) moveDown() {
	if lv.idx < len(lv.content.rows)-1 {
		lv.idx++
	}
}

// selectedPush returns the item the current row pushes, or nil for
// display-only rows and empty layers.
func (lv *layerView) selectedPush() *drilldown.Item {
	if lv.idx < 0 || lv.idx >= len(lv.content.rows) {
		return nil
	}
	return lv.content.rows[lv.idx].push
}

// bodyLines flattens the layer into renderable lines: notice or body first,
// then one line per row with the selection highlighted when the layer is
// interactive.
func (lv *layerView) bodyLines(width int, interactive bool) []string {
	var lines []string

	if lv.content.notice != "" {
		lines = append(lines, styleMuted().Render(lv.content.notice))
		return lines
	}

	lines = append(lines, lv.content.body...)

	selected := lipgloss.NewStyle().
		Background(colorSelectedBg).
		Foreground(colorSelectedFg)

	for i, row := range lv.content.rows {
		ln := row.label
		if interactive && i == lv.idx {
			ln = selected.Render("▸ " + stripANSIEscapes(row.label))
		} else {
			ln = "  " + ln
		}
		lines = append(lines, ln)
	}
	return lines
}

// render produces the layer's visible lines clamped to maxRows, scrolling to
// keep the selection in view. Returned lines are not yet boxed.
func (lv *layerView) render(width, maxRows int, interactive bool) string {
	lines := lv.bodyLines(width, interactive)
	if maxRows <= 0 || len(lines) <= maxRows {
		lv.off = 0
		return strings.Join(lines, "\n")
	}

	// Keep the selected row visible. Rows start after the body lines.
	selLine := len(lv.content.body) + lv.idx
	if selLine < lv.off {
		lv.off = selLine
	}
	if selLine >= lv.off+maxRows {
		lv.off = selLine - maxRows + 1
	}
	if lv.off > len(lines)-maxRows {
		lv.off = len(lines) - maxRows
	}
	if lv.off < 0 {
		lv.off = 0
	}

	return strings.Join(lines[lv.off:lv.off+maxRows], "\n")
}

// syncLayerViews mounts a view for every stack item that lacks one and prunes
// views whose items left the stack. Existing views are left alone so covered
// layers keep their content and cursor.
func syncLayerViews(views map[string]*layerView, stack *drilldown.Stack, build func(drilldown.Item) layerContent) {
	items := stack.Items()

	live := make(map[string]bool, len(items))
	for _, it := range items {
		live[it.ID] = true
		if _, ok := views[it.ID]; !ok {
			views[it.ID] = newLayerView(build(it))
		}
	}
	for id := range views {
		if !live[id] {
			delete(views, id)
		}
	}
}
