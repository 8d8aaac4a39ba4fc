package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderVerticalScrollBarLine draws a one-line position indicator for a
// view of `visible` lines starting at offset within `total`.
func renderVerticalScrollBarLine(width, offset, visible, total int) string {
	if width <= 0 || visible <= 0 || total <= visible {
		return ""
	}
	maxOffset := total - visible
	offset = clamp(offset, 0, maxOffset)

	const prefix = "  ↕ "
	trackW := width - lipgloss.Width(prefix) - 2
	if trackW < 6 {
		return fitAnsiWidth(fmt.Sprintf("%s%d/%d", prefix, offset, maxOffset), width)
	}

	thumbW := clamp(int(math.Round(float64(visible)/float64(total)*float64(trackW))), 1, trackW)
	thumbPos := int(math.Round(float64(offset) / float64(maxOffset) * float64(trackW-thumbW)))

	rail := lipgloss.NewStyle().Foreground(colorSurface1)
	thumb := lipgloss.NewStyle().Foreground(colorAccent)
	arrow := lipgloss.NewStyle().Foreground(colorDim)

	line := prefix +
		arrow.Render("▲") +
		rail.Render(strings.Repeat("─", thumbPos)) +
		thumb.Render(strings.Repeat("━", thumbW)) +
		rail.Render(strings.Repeat("─", trackW-thumbPos-thumbW)) +
		arrow.Render("▼")
	return fitAnsiWidth(line, width)
}

// fitAnsiWidth cuts or pads s to exactly width cells, keeping escape codes.
func fitAnsiWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	out := ansi.Truncate(s, width, "")
	if pad := width - lipgloss.Width(out); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}
