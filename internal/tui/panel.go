package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/branchboard/internal/core"
	"github.com/samber/lo"
)

// renderPanel draws one branch into exactly w×h cells. barCursor < 0 means
// the panel is not focused and charts show their latest point.
func renderPanel(b core.Branch, w, h int, selected bool, barCursor int) string {
	color := BranchColor(b.Color)
	border := lipgloss.RoundedBorder()
	if selected {
		border = lipgloss.ThickBorder()
	}
	innerW, innerH := max(w-2, 1), max(h-2, 1)

	lines := []string{
		fitAnsiWidth(panelTitle(b, color), innerW),
		fitAnsiWidth(slotPills(b), innerW),
	}
	if chartH := innerH - len(lines); chartH > 0 {
		lines = append(lines, strings.Split(renderChartGrid(b, innerW, chartH, barCursor), "\n")...)
	}

	body := padToSize(strings.Join(lines, "\n"), innerW, innerH)
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Render(body)
}

func panelTitle(b core.Branch, color lipgloss.Color) string {
	title := lipgloss.NewStyle().Foreground(color).Bold(true).Render(b.Name)
	meta := lo.Filter([]string{b.Code, b.City}, func(s string, _ int) bool { return s != "" })
	if len(meta) > 0 {
		title += " " + dimStyle.Render(strings.Join(meta, " · "))
	}
	return title
}

// slotPills lists every slot in its chart colour with its number, name and
// sort suffix. Hidden slots are struck through.
func slotPills(b core.Branch) string {
	pills := make([]string, 0, core.SlotCount)
	for i, slot := range b.Slots {
		text := string(rune('1'+i)) + " " + slot.Series.Name
		if label := slot.Sort.Label(); label != "" {
			text += " " + label
		}
		pills = append(pills, pillStyle(SlotColor(i), slot.Visible).Render(text))
	}
	return strings.Join(pills, dimStyle.Render(" │ "))
}

// renderChartGrid lays the active slots out in ChartColumns columns.
func renderChartGrid(b core.Branch, w, h int, barCursor int) string {
	active := lo.Filter(lo.Range(core.SlotCount), func(i int, _ int) bool { return b.Slots[i].Active() })
	if len(active) == 0 {
		return padToSize(dimStyle.Render("all metrics hidden"), w, h)
	}

	cols := core.ChartColumns(len(active))
	rows := (len(active) + cols - 1) / cols
	cellW := w / cols
	cellH := max(h/rows, 1)

	gridLines := make([]string, 0, h)
	for r := 0; r < rows; r++ {
		cells := make([]string, 0, cols)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			cw := cellW
			if c == cols-1 {
				cw = w - cellW*(cols-1)
			}
			if i >= len(active) {
				cells = append(cells, padToSize("", cw, cellH))
				continue
			}
			slot := active[i]
			cells = append(cells, padToSize(renderChart(b.Slots[slot], max(cw-1, 1), cellH, SlotColor(slot), barCursor), cw, cellH))
		}
		gridLines = append(gridLines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return padToSize(strings.Join(gridLines, "\n"), w, h)
}
