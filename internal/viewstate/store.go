// Package viewstate holds the per-branch dashboard state and the toggle
// operations driven by user input.
//
// Store is a value type. Every operation returns a new Store backed by a new
// slice, so a Store handed to the renderer is never changed underneath it.
package viewstate

import (
	"github.com/janekbaraniewski/branchboard/internal/core"
	"github.com/janekbaraniewski/branchboard/internal/layout"
	"github.com/samber/lo"
)

type Store struct {
	branches []core.Branch
}

// New copies branches into a Store.
func New(branches []core.Branch) Store {
	out := make([]core.Branch, len(branches))
	copy(out, branches)
	return Store{branches: out}
}

func (s Store) Len() int { return len(s.branches) }

// Branches returns a copy of all branch records in display order.
func (s Store) Branches() []core.Branch {
	out := make([]core.Branch, len(s.branches))
	copy(out, s.branches)
	return out
}

func (s Store) Branch(id int) (core.Branch, bool) {
	return lo.Find(s.branches, func(b core.Branch) bool { return b.ID == id })
}

func (s Store) VisibleBranches() []core.Branch {
	return lo.Filter(s.branches, func(b core.Branch, _ int) bool { return b.Visible })
}

// Panels is the geometry the layout engine needs for the visible branches.
func (s Store) Panels() []layout.Panel {
	return lo.Map(s.VisibleBranches(), func(b core.Branch, _ int) layout.Panel {
		return layout.Panel{ID: b.ID, Rect: b.Rect, MinW: layout.MinW, MinH: layout.MinH}
	})
}

// ToggleBranchVisibility flips a branch's visibility. When a visible branch
// is hidden and geom knows its panel, the panel's current rectangle is kept
// so showing the branch again restores the same geometry.
func (s Store) ToggleBranchVisibility(id int, geom layout.GeometryReader) Store {
	return s.update(id, func(b *core.Branch) {
		if b.Visible && geom != nil {
			if r, ok := geom.Geometry(b.ID); ok {
				b.Rect = r
			}
		}
		b.Visible = !b.Visible
	})
}

// ToggleMetricVisibility flips the visibility of one zero-based slot.
func (s Store) ToggleMetricVisibility(id, slot int) Store {
	if !core.ValidSlot(slot) {
		return s
	}
	return s.update(id, func(b *core.Branch) {
		b.Slots[slot].Visible = !b.Slots[slot].Visible
	})
}

// ToggleSortMode advances the sort mode of one zero-based slot.
func (s Store) ToggleSortMode(id, slot int) Store {
	if !core.ValidSlot(slot) {
		return s
	}
	return s.update(id, func(b *core.Branch) {
		b.Slots[slot].Sort = b.Slots[slot].Sort.Next()
	})
}

// UpdateRect records geometry reported back by the layout engine.
func (s Store) UpdateRect(id int, r core.Rect) Store {
	return s.update(id, func(b *core.Branch) {
		b.Rect = r
	})
}

// SyncGeometry copies the current rectangle of every visible panel known to
// geom into the store.
func (s Store) SyncGeometry(geom layout.GeometryReader) Store {
	if geom == nil {
		return s
	}
	return Store{branches: lo.Map(s.branches, func(b core.Branch, _ int) core.Branch {
		if !b.Visible {
			return b
		}
		if r, ok := geom.Geometry(b.ID); ok {
			b.Rect = r
		}
		return b
	})}
}

// ShowAll makes every branch visible again.
func (s Store) ShowAll() Store {
	return Store{branches: lo.Map(s.branches, func(b core.Branch, _ int) core.Branch {
		b.Visible = true
		return b
	})}
}

// IDs returns branch ids in display order.
func (s Store) IDs() []int {
	return lo.Map(s.branches, func(b core.Branch, _ int) int { return b.ID })
}

func (s Store) update(id int, fn func(*core.Branch)) Store {
	if !lo.ContainsBy(s.branches, func(b core.Branch) bool { return b.ID == id }) {
		return s
	}
	return Store{branches: lo.Map(s.branches, func(b core.Branch, _ int) core.Branch {
		if b.ID == id {
			fn(&b)
		}
		return b
	})}
}
