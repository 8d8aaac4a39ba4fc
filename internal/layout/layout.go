// Package layout places branch panels on a fixed-column grid.
//
// The dashboard treats the grid as a collaborator: it hands over the visible
// panels with their desired geometry, lets the user move and resize them, and
// reads geometry back by panel id. Size limits and collision handling live
// here, not in the callers.
package layout

import "github.com/janekbaraniewski/branchboard/internal/core"

const (
	Columns = 12
	MinW    = 5
	MinH    = 4
)

// Panel is the geometry contract for one visible panel.
type Panel struct {
	ID   int       `json:"id"`
	Rect core.Rect `json:"rect"`
	MinW int       `json:"min_w"`
	MinH int       `json:"min_h"`
}

// GeometryReader returns the current on-screen rectangle of a panel.
type GeometryReader interface {
	Geometry(id int) (core.Rect, bool)
}

// Adapter is a drag/resize grid engine.
//
// Init replaces any previous node set; callers Destroy and Init again
// whenever the visible panel set changes.
type Adapter interface {
	GeometryReader
	Columns() int
	Init(panels []Panel)
	Destroy()
	Initialized() bool
	Nodes() []Panel
	Move(id, dx, dy int) bool
	Resize(id, dw, dh int) bool
}
