package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/branchboard/internal/core"
)

// sortKeys are the shifted digits on a US layout: shift+1 cycles slot 1.
var sortKeys = map[string]int{"!": 0, "@": 1, "#": 2, "$": 3, "%": 4, "^": 5}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if key == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "r":
		m, cmd := m.refetch()
		m.status = "refreshing…"
		return m, cmd
	case "t":
		name := CycleTheme()
		m.status = "theme: " + name
		return m, m.persistThemeCmd(name)
	case "pgdown", "ctrl+d":
		m.offset = clamp(m.offset+max(m.bodyHeight()/2, 1), 0, m.maxOffset())
		return m, nil
	case "pgup", "ctrl+u":
		m.offset = clamp(m.offset-max(m.bodyHeight()/2, 1), 0, m.maxOffset())
		return m, nil
	}

	if m.loading || m.store.Len() == 0 {
		return m, nil
	}

	switch key {
	case "left", "h":
		m.cursor = (m.cursor - 1 + m.store.Len()) % m.store.Len()
		m.barCursor = 0
		return m, nil
	case "right", "l", "tab":
		m.cursor = (m.cursor + 1) % m.store.Len()
		m.barCursor = 0
		return m, nil
	case "[":
		m.barCursor = max(m.barCursor-1, 0)
		return m, nil
	case "]":
		m.barCursor = min(m.barCursor+1, m.maxBarCursor())
		return m, nil
	case "a":
		m.store = m.store.ShowAll()
		return m, m.scheduleLayout()
	}

	id, _ := m.selectedID()

	switch key {
	case " ", "enter":
		m.store = m.store.ToggleBranchVisibility(id, m.grid)
		return m, m.scheduleLayout()
	case "1", "2", "3", "4", "5", "6":
		m.store = m.store.ToggleMetricVisibility(id, int(key[0]-'1'))
		m.barCursor = min(m.barCursor, m.maxBarCursor())
		return m, m.scheduleLayout()
	case "H":
		return m.moveSelected(id, -1, 0), nil
	case "L":
		return m.moveSelected(id, 1, 0), nil
	case "K":
		return m.moveSelected(id, 0, -1), nil
	case "J":
		return m.moveSelected(id, 0, 1), nil
	case "<", "ctrl+left":
		return m.resizeSelected(id, -1, 0), nil
	case ">", "ctrl+right":
		return m.resizeSelected(id, 1, 0), nil
	case "-", "ctrl+up":
		return m.resizeSelected(id, 0, -1), nil
	case "+", "=", "ctrl+down":
		return m.resizeSelected(id, 0, 1), nil
	}

	if slot, ok := sortKeys[key]; ok && core.ValidSlot(slot) {
		m.store = m.store.ToggleSortMode(id, slot)
		m.barCursor = 0
		return m, m.scheduleLayout()
	}
	return m, nil
}

// maxBarCursor is the last bar index of the longest chart drawn for the
// selected branch.
func (m Model) maxBarCursor() int {
	id, ok := m.selectedID()
	if !ok {
		return 0
	}
	b, ok := m.store.Branch(id)
	if !ok {
		return 0
	}
	longest := 0
	for _, slot := range b.Slots {
		if slot.Active() {
			longest = max(longest, len(slot.Series.Points))
		}
	}
	return max(longest-1, 0)
}

// Move and resize act on the live grid; the store only mirrors the result.
func (m Model) moveSelected(id, dx, dy int) Model {
	if m.grid.Move(id, dx, dy) {
		m.store = m.store.SyncGeometry(m.grid)
	}
	return m
}

func (m Model) resizeSelected(id, dw, dh int) Model {
	if m.grid.Resize(id, dw, dh) {
		m.store = m.store.SyncGeometry(m.grid)
	}
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.offset = clamp(m.offset-3, 0, m.maxOffset())
	case tea.MouseButtonWheelDown:
		m.offset = clamp(m.offset+3, 0, m.maxOffset())
	}
	return m, nil
}
