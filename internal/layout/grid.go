package layout

import (
	"sort"

	"github.com/janekbaraniewski/branchboard/internal/core"
	"github.com/samber/lo"
)

// Grid is an in-memory grid engine with gravity: panels are packed upwards
// after every change and overlapping panels are pushed down.
type Grid struct {
	columns int
	nodes   []Panel
	live    bool
}

var _ Adapter = (*Grid)(nil)

func NewGrid(columns int) *Grid {
	if columns <= 0 {
		columns = Columns
	}
	return &Grid{columns: columns}
}

func (g *Grid) Columns() int { return g.columns }

func (g *Grid) Init(panels []Panel) {
	nodes := make([]Panel, 0, len(panels))
	seen := make(map[int]bool, len(panels))
	for _, p := range panels {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		nodes = append(nodes, g.clamp(p))
	}
	sortByPosition(nodes)
	g.nodes = g.pack(nodes)
	g.live = true
}

func (g *Grid) Destroy() {
	g.nodes = nil
	g.live = false
}

func (g *Grid) Initialized() bool { return g.live }

func (g *Grid) Nodes() []Panel {
	out := make([]Panel, len(g.nodes))
	copy(out, g.nodes)
	return out
}

func (g *Grid) Geometry(id int) (core.Rect, bool) {
	if !g.live {
		return core.Rect{}, false
	}
	n, ok := lo.Find(g.nodes, func(p Panel) bool { return p.ID == id })
	if !ok {
		return core.Rect{}, false
	}
	return n.Rect, true
}

// Move shifts a panel by whole cells. It reports whether the panel exists.
func (g *Grid) Move(id, dx, dy int) bool {
	return g.update(id, func(p *Panel) {
		p.Rect.X += dx
		p.Rect.Y += dy
	})
}

// Resize grows or shrinks a panel, respecting its minimum size.
func (g *Grid) Resize(id, dw, dh int) bool {
	return g.update(id, func(p *Panel) {
		p.Rect.W += dw
		p.Rect.H += dh
	})
}

func (g *Grid) update(id int, fn func(*Panel)) bool {
	if !g.live {
		return false
	}
	_, idx, ok := lo.FindIndexOf(g.nodes, func(p Panel) bool { return p.ID == id })
	if !ok {
		return false
	}

	nodes := g.Nodes()
	before := nodes[idx]
	changed := before
	fn(&changed)
	changed = g.clamp(changed)

	var lead, rest []Panel
	for i, n := range nodes {
		if i == idx {
			continue
		}
		// Moving down over a panel that sat below swaps the two: the panel
		// takes the vacated row and is placed first.
		if changed.Rect.Y > before.Rect.Y && n.Rect.Y >= before.Rect.Y && overlaps(n.Rect, changed.Rect) {
			n.Rect.Y = before.Rect.Y
			lead = append(lead, n)
			continue
		}
		rest = append(rest, n)
	}
	sortByPosition(lead)
	sortByPosition(rest)

	ordered := append(append(lead, changed), rest...)
	g.nodes = g.pack(ordered)
	return true
}

func (g *Grid) clamp(p Panel) Panel {
	if p.MinW <= 0 {
		p.MinW = MinW
	}
	if p.MinH <= 0 {
		p.MinH = MinH
	}
	if p.MinW > g.columns {
		p.MinW = g.columns
	}
	r := p.Rect
	r.W = min(max(r.W, p.MinW), g.columns)
	r.H = max(r.H, p.MinH)
	r.X = min(max(r.X, 0), g.columns-r.W)
	r.Y = max(r.Y, 0)
	p.Rect = r
	return p
}

// pack places nodes in order, pushing each below anything it overlaps, then
// floats every node up as far as it can go.
func (g *Grid) pack(nodes []Panel) []Panel {
	placed := make([]Panel, 0, len(nodes))
	for _, n := range nodes {
		for {
			hit, ok := lo.Find(placed, func(p Panel) bool { return overlaps(p.Rect, n.Rect) })
			if !ok {
				break
			}
			n.Rect.Y = hit.Rect.Y + hit.Rect.H
		}
		placed = append(placed, n)
	}

	sortByPosition(placed)
	for i := range placed {
		for placed[i].Rect.Y > 0 {
			up := placed[i].Rect
			up.Y--
			blocked := false
			for j := range placed {
				if j != i && overlaps(placed[j].Rect, up) {
					blocked = true
					break
				}
			}
			if blocked {
				break
			}
			placed[i].Rect = up
		}
	}
	sortByPosition(placed)
	return placed
}

func overlaps(a, b core.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func sortByPosition(nodes []Panel) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Rect.Y != nodes[j].Rect.Y {
			return nodes[i].Rect.Y < nodes[j].Rect.Y
		}
		return nodes[i].Rect.X < nodes[j].Rect.X
	})
}

// Height is the number of rows spanned by the current node set.
func (g *Grid) Height() int {
	h := 0
	for _, n := range g.nodes {
		h = max(h, n.Rect.Y+n.Rect.H)
	}
	return h
}
