package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall. Layer compositing depends on every block being a clean
// rectangle.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := lines[i]
		// Cut extremely long lines early so StringWidth stays bounded.
		if width > 0 && len(ln) > 8192 {
			if width == 1 {
				ln = xansi.Cut(ln, 0, 1)
			} else {
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
		}

		w := xansi.StringWidth(ln)

		if w > width {
			if width <= 0 {
				ln = ""
			} else if width == 1 {
				ln = xansi.Cut(ln, 0, 1)
			} else {
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln = ln + strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}

	return strings.Join(lines, "\n")
}

// overlayAt paints block over bg with its top-left corner at column x, row y
// (both 0-based, in cells). bg and block must be normalized rectangles; the
// result keeps bg's size. This is the z-order primitive: later calls paint
// above earlier ones.
func overlayAt(bg, block string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	blockLines := strings.Split(block, "\n")
	if len(bgLines) == 0 {
		return bg
	}
	bgW := xansi.StringWidth(bgLines[0])

	for i, bl := range blockLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		blW := xansi.StringWidth(bl)
		left := xansi.Cut(bgLines[row], 0, x)
		right := ""
		if x+blW < bgW {
			right = xansi.Cut(bgLines[row], x+blW, bgW)
		}
		bgLines[row] = left + bl + right
	}
	return strings.Join(bgLines, "\n")
}
