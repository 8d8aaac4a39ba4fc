package tui

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/branchboard/internal/core"
)

// renderChart draws one slot: a name line, the bars and a detail line for
// the highlighted bar.
func renderChart(slot core.Slot, w, h int, color lipgloss.Color, barCursor int) string {
	p, ok := core.Project(slot.Series, slot.Sort)
	if !ok {
		return ""
	}

	name := lipgloss.NewStyle().Foreground(color).Render(p.Name)
	if p.Unit != "" {
		name += dimStyle.Render(" " + p.Unit)
	}
	lines := []string{fitAnsiWidth(name, w)}

	if p.Empty() {
		placeholder := lipgloss.Place(w, max(h-1, 1), lipgloss.Center, lipgloss.Center, dimStyle.Render("No data"))
		return strings.Join(append(lines, placeholder), "\n")
	}

	focus := len(p.Values) - 1
	if barCursor >= 0 {
		focus = clamp(barCursor, 0, len(p.Values)-1)
	}

	if barsH := h - 2; barsH > 0 {
		lines = append(lines, renderBars(p, w, barsH, color, focus))
	}
	detail := labelStyle.Render(p.Labels[focus]+" ") + valueStyle.Render(core.FormatValue(p.Values[focus], p.Unit))
	lines = append(lines, fitAnsiWidth(detail, w))
	return strings.Join(lines, "\n")
}

// renderBars feeds bar heights (0..100) to an ntcharts bar chart with a fixed
// maximum, so every chart shares the same scale.
func renderBars(p core.Projection, w, h int, color lipgloss.Color, focus int) string {
	heights := core.BarHeights(p.Values)
	normal := lipgloss.NewStyle().Foreground(color)
	highlight := lipgloss.NewStyle().Foreground(colorFlamingo)

	data := make([]barchart.BarData, len(heights))
	for i, v := range heights {
		style := normal
		if i == focus {
			style = highlight
		}
		data[i] = barchart.BarData{
			Label:  p.Labels[i],
			Values: []barchart.BarValue{{Name: p.Labels[i], Value: v, Style: style}},
		}
	}

	gap := 1
	if w < 2*len(data)-1 {
		gap = 0
	}
	bc := barchart.New(w, h,
		barchart.WithMaxValue(100),
		barchart.WithNoAxis(),
		barchart.WithBarGap(gap),
	)
	bc.PushAll(data)
	bc.Draw()
	return padToSize(bc.View(), w, h)
}
