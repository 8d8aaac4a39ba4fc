package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/branchboard/internal/core"
)

// Palette tokens. applyTheme overwrites them, so styles derived from them
// must be rebuilt there too.
var (
	colorBase     lipgloss.Color
	colorSurface0 lipgloss.Color
	colorSurface1 lipgloss.Color
	colorText     lipgloss.Color
	colorSubtext  lipgloss.Color
	colorDim      lipgloss.Color

	colorAccent   lipgloss.Color
	colorBlue     lipgloss.Color
	colorSapphire lipgloss.Color
	colorGreen    lipgloss.Color
	colorYellow   lipgloss.Color
	colorRed      lipgloss.Color
	colorPeach    lipgloss.Color
	colorTeal     lipgloss.Color
	colorLavender lipgloss.Color
	colorSky      lipgloss.Color
	colorFlamingo lipgloss.Color
)

var (
	headerStyle    lipgloss.Style
	helpStyle      lipgloss.Style
	helpKeyStyle   lipgloss.Style
	dimStyle       lipgloss.Style
	labelStyle     lipgloss.Style
	valueStyle     lipgloss.Style
	errorStyle     lipgloss.Style
	statusOKStyle  lipgloss.Style
	separatorStyle lipgloss.Style
)

func applyTheme(t Theme) {
	colorBase = t.Base
	colorSurface0 = t.Surface0
	colorSurface1 = t.Surface1
	colorText = t.Text
	colorSubtext = t.Subtext
	colorDim = t.Dim
	colorAccent = t.Accent
	colorBlue = t.Blue
	colorSapphire = t.Sapphire
	colorGreen = t.Green
	colorYellow = t.Yellow
	colorRed = t.Red
	colorPeach = t.Peach
	colorTeal = t.Teal
	colorLavender = t.Lavender
	colorSky = t.Sky
	colorFlamingo = t.Flamingo

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorSapphire).Bold(true)
	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	valueStyle = lipgloss.NewStyle().Foreground(colorText)
	errorStyle = lipgloss.NewStyle().Foreground(colorBase).Background(colorRed).Bold(true)
	statusOKStyle = lipgloss.NewStyle().Foreground(colorGreen)
	separatorStyle = lipgloss.NewStyle().Foreground(colorSurface1)
}

// BranchColor maps a branch palette index onto the active theme.
func BranchColor(idx int) lipgloss.Color {
	palette := [core.PaletteSize]lipgloss.Color{
		colorBlue, colorGreen, colorYellow, colorRed,
		colorAccent, colorTeal, colorPeach, colorSky,
	}
	if idx < 0 {
		idx = -idx
	}
	return palette[idx%core.PaletteSize]
}

// SlotColor is the chart colour of a metric slot. Slots keep their colour
// across branches so the same metric reads the same everywhere.
func SlotColor(slot int) lipgloss.Color {
	palette := [core.SlotCount]lipgloss.Color{
		colorBlue, colorGreen, colorLavender, colorPeach, colorFlamingo, colorTeal,
	}
	if !core.ValidSlot(slot) {
		return colorAccent
	}
	return palette[slot]
}

func pillStyle(c lipgloss.Color, active bool) lipgloss.Style {
	if !active {
		return lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true)
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
