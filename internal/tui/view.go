package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/branchboard/internal/core"
	"github.com/samber/lo"
)

const (
	headerLines = 2
	footerLines = 1
	// rowLines is the terminal height of one grid row.
	rowLines = 4
)

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay(m.width, m.height)
	}

	header := m.renderHeader(m.width)
	body := m.renderBody(m.width, m.bodyHeight())
	footer := m.renderFooter(m.width)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) bodyHeight() int {
	return max(m.height-headerLines-footerLines, 1)
}

// viewHeight is the number of canvas lines on screen. When the canvas
// overflows, the last body line holds the scrollbar.
func (m Model) viewHeight() int {
	return viewportLines(m.bodyHeight(), m.canvasHeight())
}

func viewportLines(body, canvas int) int {
	if canvas > body {
		return max(body-1, 1)
	}
	return body
}

func (m Model) canvasHeight() int {
	bottoms := lo.Map(m.store.VisibleBranches(), func(b core.Branch, _ int) int {
		r := m.panelRect(b)
		return r.Y + r.H
	})
	return lo.Max(bottoms) * rowLines
}

// panelRect is the laid-out rectangle of b, or its stored one while the
// grid has no node for it yet.
func (m Model) panelRect(b core.Branch) core.Rect {
	if m.grid != nil {
		if r, ok := m.grid.Geometry(b.ID); ok {
			return r
		}
	}
	return b.Rect
}

func (m Model) renderHeader(w int) string {
	title := headerStyle.Render(m.title)
	if m.title == "" {
		title = headerStyle.Render("Branches")
	}

	selected, hasSel := m.selectedID()
	pills := lo.Map(m.store.Branches(), func(b core.Branch, _ int) string {
		label := "● " + b.Name
		if hasSel && b.ID == selected {
			label = "[" + label + "]"
		}
		return pillStyle(BranchColor(b.Color), b.Visible).Render(label)
	})

	line := title
	if len(pills) > 0 {
		line += "  " + strings.Join(pills, " ")
	}
	sep := separatorStyle.Render(strings.Repeat("─", max(w, 0)))
	return fitAnsiWidth(line, w) + "\n" + sep
}

func (m Model) renderBody(w, h int) string {
	switch {
	case m.loading:
		msg := m.spinner.View() + " " + labelStyle.Render("Loading branch data…")
		return padToSize(lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg), w, h)
	case m.err != nil:
		return padToSize("", w, h)
	case m.store.Len() == 0:
		return padToSize(lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render("No branches")), w, h)
	case len(m.store.VisibleBranches()) == 0:
		msg := dimStyle.Render("All branches hidden · press a to show all")
		return padToSize(lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg), w, h)
	}

	canvas := m.renderCanvas(w)
	overflow := len(canvas) > h
	viewH := viewportLines(h, len(canvas))
	start := clamp(m.offset, 0, max(len(canvas)-viewH, 0))
	end := min(start+viewH, len(canvas))

	lines := append([]string(nil), canvas[start:end]...)
	if overflow {
		lines = append(lines, renderVerticalScrollBarLine(w, start, viewH, len(canvas)))
	}
	return padToSize(strings.Join(lines, "\n"), w, h)
}

func (m Model) renderFooter(w int) string {
	if m.err != nil {
		banner := errorStyle.Render(" ✗ Failed to load data: " + m.err.Error() + " ")
		return fitAnsiWidth(banner+helpStyle.Render("  r retry · q quit"), w)
	}

	hints := []struct{ key, desc string }{
		{"←/→", "branch"}, {"space", "show/hide"}, {"1-6", "metric"}, {"⇧1-6", "sort"},
		{"HJKL", "move"}, {"<>+-", "size"}, {"r", "reload"}, {"?", "help"},
	}
	parts := lo.Map(hints, func(h struct{ key, desc string }, _ int) string {
		return helpKeyStyle.Render(h.key) + " " + helpStyle.Render(h.desc)
	})
	line := strings.Join(parts, helpStyle.Render(" · "))
	if m.status != "" {
		line = statusOKStyle.Render(m.status) + helpStyle.Render("  │  ") + line
	}
	return fitAnsiWidth(line, w)
}

// renderCanvas draws every visible panel at its grid position and returns
// the result line by line. Grid columns scale to the terminal width.
func (m Model) renderCanvas(w int) []string {
	type placed struct {
		left, width int
		line        string
	}

	colX := func(x int) int { return x * w / m.gridColumns() }
	height := m.canvasHeight()
	rows := make([][]placed, height)

	selected, _ := m.selectedID()
	for _, b := range m.store.VisibleBranches() {
		r := m.panelRect(b)
		left, right := colX(r.X), colX(r.X+r.W)
		top := r.Y * rowLines
		pw, ph := right-left, r.H*rowLines
		if pw <= 0 || ph <= 0 {
			continue
		}

		barCursor := -1
		if b.ID == selected {
			barCursor = m.barCursor
		}
		lines := strings.Split(renderPanel(b, pw, ph, b.ID == selected, barCursor), "\n")
		for i, line := range lines {
			y := top + i
			if y < 0 || y >= height {
				continue
			}
			rows[y] = append(rows[y], placed{left: left, width: pw, line: line})
		}
	}

	out := make([]string, height)
	for y, cells := range rows {
		sort.Slice(cells, func(i, j int) bool { return cells[i].left < cells[j].left })

		var sb strings.Builder
		cursor := 0
		for _, c := range cells {
			if c.left < cursor {
				continue
			}
			sb.WriteString(strings.Repeat(" ", c.left-cursor))
			sb.WriteString(fitAnsiWidth(c.line, c.width))
			cursor = c.left + c.width
		}
		out[y] = fitAnsiWidth(sb.String(), w)
	}
	return out
}

func (m Model) gridColumns() int {
	return max(m.grid.Columns(), 1)
}

func padToSize(content string, w, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = fitAnsiWidth(l, w)
	}
	return strings.Join(lines, "\n")
}
