package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stripANSIEscapes removes ANSI CSI escape sequences from a string.
// Intentionally minimal: good enough for re-styling already-rendered content.
func stripANSIEscapes(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != 0x1b { // ESC
			out = append(out, b[i])
			continue
		}
		// CSI: ESC [
		if i+1 < len(b) && b[i+1] == '[' {
			i += 2
			// Consume until final byte (0x40-0x7E).
			for i < len(b) {
				c := b[i]
				if c >= 0x40 && c <= 0x7E {
					break
				}
				i++
			}
			continue
		}
		// Unknown ESC sequence: drop just the ESC byte.
	}
	return string(out)
}

// dimBackground re-renders s as covered content: inner ANSI styling is
// stripped first so it cannot override the scrim, then every line gets the
// scrim foreground. Used for the backdrop under the layer stack and for the
// bodies of non-topmost layers.
func dimBackground(s string) string {
	scrim := lipgloss.NewStyle().Foreground(colorScrim)
	lines := strings.Split(stripANSIEscapes(s), "\n")
	for i, ln := range lines {
		if ln == "" {
			continue
		}
		lines[i] = scrim.Render(ln)
	}
	return strings.Join(lines, "\n")
}
