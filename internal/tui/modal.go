package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	topPadLines = 1
	maxContentW = 96
	// Extra rows a covered layer peeks out above the layer covering it.
	layerPeekRows = 1
)

// modalBodyWidth returns the content width for a layer box at a given screen
// width. Boxes are capped so very wide terminals don't produce unreadable
// line lengths.
func modalBodyWidth(screenW int) int {
	w := screenW - 10
	if w > maxContentW {
		w = maxContentW
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderModalBox renders a layer box: header band with the title, body
// beneath, both normalized to width columns.
//
// Avoid borders here: some terminals show background artifacts when nesting
// bordered components inside a box with a background color.
func renderModalBox(width int, title string, content string) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Background(colorHeaderBg).
		Foreground(colorSurfaceFg).
		Padding(0, 1).
		Width(inner + 2).
		Render(title)

	body := lipgloss.NewStyle().
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Padding(0, 1).
		Width(inner + 2).
		Render(normalizePane(content, inner, 0))

	return header + "\n" + body
}

// scaledLayerWidth applies the visual recession of a covered layer to its box
// width. The cell grid is the only "scale" a terminal has, so the 2%-per-level
// shrink becomes a proportional width reduction.
func scaledLayerWidth(screenW int, scale float64) int {
	w := int(float64(modalBodyWidth(screenW)) * scale)
	if w < 20 {
		w = 20
	}
	return w
}

// centerX returns the column at which a block of the given width is centered
// on the screen.
func centerX(screenW, blockW int) int {
	x := (screenW - blockW) / 2
	if x < 0 {
		x = 0
	}
	return x
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
