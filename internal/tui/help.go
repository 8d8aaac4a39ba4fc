package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []struct{ key, desc string }
}

var helpSections = []helpSection{
	{"Branches", []struct{ key, desc string }{
		{"← → / h l", "Select branch"},
		{"Space / Enter", "Show or hide the selected branch"},
		{"a", "Show all branches"},
	}},
	{"Metrics", []struct{ key, desc string }{
		{"1 … 6", "Show or hide a metric chart"},
		{"Shift+1 … 6", "Cycle sort: Monthly → Value → hidden"},
		{"[ ]", "Move the highlighted bar"},
	}},
	{"Layout", []struct{ key, desc string }{
		{"H J K L", "Move panel left, down, up, right"},
		{"< >", "Narrower / wider"},
		{"- +", "Shorter / taller"},
		{"PgUp / PgDn", "Scroll"},
	}},
	{"Global", []struct{ key, desc string }{
		{"r", "Reload data"},
		{"t", "Cycle theme"},
		{"?", "Toggle this help"},
		{"q / Ctrl+C", "Quit"},
	}},
}

// renderHelpOverlay draws a centered key reference. Any key dismisses it.
func (m Model) renderHelpOverlay(screenW, screenH int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	descStyle := lipgloss.NewStyle().Foreground(colorText)
	hintStyle := lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	lines := []string{titleStyle.Render("Branch Dashboard Help"), ""}
	for _, s := range helpSections {
		lines = append(lines, headingStyle.Render(s.title))
		for _, k := range s.keys {
			lines = append(lines, "  "+helpKeyStyle.Render(padRight(k.key, 16))+descStyle.Render(k.desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines,
		labelStyle.Render("Theme: ")+valueStyle.Render(ThemeName()),
		hintStyle.Render("Press any key to dismiss"),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
