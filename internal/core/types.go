package core

import "fmt"

// SlotCount is the fixed number of metric slots carried by every branch.
const SlotCount = 6

// PaletteSize is the number of panel colours branches rotate through.
const PaletteSize = 8

// SortMode is the display ordering applied to one metric slot.
type SortMode int

const (
	SortByPeriod SortMode = iota // chronological, oldest first
	SortByValue                  // highest value first
	SortNone                     // series hidden from the chart grid
)

var sortModeNames = map[SortMode]string{
	SortByPeriod: "month",
	SortByValue:  "value",
	SortNone:     "none",
}

// Next advances the mode through period -> value -> none -> period.
func (s SortMode) Next() SortMode {
	switch s {
	case SortByPeriod:
		return SortByValue
	case SortByValue:
		return SortNone
	default:
		return SortByPeriod
	}
}

func (s SortMode) String() string {
	if name, ok := sortModeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortMode(%d)", int(s))
}

// Label is the pill suffix shown next to a slot name.
func (s SortMode) Label() string {
	switch s {
	case SortByPeriod:
		return "(Monthly)"
	case SortByValue:
		return "(Value)"
	default:
		return ""
	}
}

// ParseSortMode maps "month", "value" and "none" to a mode. Anything else
// falls back to SortByPeriod.
func ParseSortMode(s string) SortMode {
	for mode, name := range sortModeNames {
		if name == s {
			return mode
		}
	}
	return SortByPeriod
}

// Point is one monthly observation. Period keeps the raw month string from
// the source so chronological sorting never depends on the display label.
type Point struct {
	Period string  `json:"period"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
}

type Series struct {
	Name   string  `json:"name"`
	Unit   string  `json:"unit,omitempty"`
	Points []Point `json:"points"`
}

// EmptySeries returns the placeholder for a slot with no source metric.
// slot is zero-based.
func EmptySeries(slot int) Series {
	return Series{Name: DefaultSlotName(slot), Points: []Point{}}
}

// DefaultSlotName is "Metric N" for the zero-based slot index.
func DefaultSlotName(slot int) string {
	return fmt.Sprintf("Metric %d", slot+1)
}

func (s Series) Empty() bool { return len(s.Points) == 0 }

func (s Series) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Label
	}
	return out
}

func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

func (s Series) Periods() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Period
	}
	return out
}

// Rect is a panel rectangle in grid units.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// DefaultRect lays branches out two per row, each half the grid wide.
func DefaultRect(index int) Rect {
	return Rect{
		X: (index % 2) * 6,
		Y: (index / 2) * 5,
		W: 6,
		H: 4,
	}
}

type Slot struct {
	Series  Series   `json:"series"`
	Visible bool     `json:"visible"`
	Sort    SortMode `json:"sort"`
}

// Active reports whether the slot takes a cell in the panel's chart grid.
func (s Slot) Active() bool {
	return s.Visible && s.Sort != SortNone
}

// Branch is one dashboard panel. Slots is an array, so copying a Branch
// copies every slot flag with it.
type Branch struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Code    string          `json:"code,omitempty"`
	City    string          `json:"city,omitempty"`
	Status  string          `json:"status,omitempty"`
	Color   int             `json:"color"`
	Slots   [SlotCount]Slot `json:"slots"`
	Visible bool            `json:"visible"`
	Rect    Rect            `json:"rect"`
}

// ActiveSlots counts slots that are visible and not sorted to none.
func (b Branch) ActiveSlots() int {
	n := 0
	for _, s := range b.Slots {
		if s.Active() {
			n++
		}
	}
	return n
}

// ValidSlot reports whether i is a zero-based slot index.
func ValidSlot(i int) bool {
	return i >= 0 && i < SlotCount
}
