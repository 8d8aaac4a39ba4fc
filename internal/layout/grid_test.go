package layout

import (
	"testing"

	"github.com/janekbaraniewski/branchboard/internal/core"
)

func panel(id int, r core.Rect) Panel {
	return Panel{ID: id, Rect: r, MinW: MinW, MinH: MinH}
}

func mustGeometry(t *testing.T, g *Grid, id int) core.Rect {
	t.Helper()
	r, ok := g.Geometry(id)
	if !ok {
		t.Fatalf("Geometry(%d) missing", id)
	}
	return r
}

func TestGridInitKeepsNonOverlappingLayout(t *testing.T) {
	g := NewGrid(Columns)
	g.Init([]Panel{
		panel(1, core.DefaultRect(0)),
		panel(2, core.DefaultRect(1)),
		panel(3, core.DefaultRect(2)),
	})

	if !g.Initialized() {
		t.Fatal("Initialized() = false after Init")
	}
	if got := mustGeometry(t, g, 2); got != (core.Rect{X: 6, Y: 0, W: 6, H: 4}) {
		t.Fatalf("panel 2 = %+v", got)
	}
	// Default rows are 5 apart with height 4, so gravity closes the gap.
	if got := mustGeometry(t, g, 3); got != (core.Rect{X: 0, Y: 4, W: 6, H: 4}) {
		t.Fatalf("panel 3 = %+v", got)
	}
}

func TestGridEnforcesMinimumSize(t *testing.T) {
	g := NewGrid(Columns)
	g.Init([]Panel{{ID: 1, Rect: core.Rect{X: 10, Y: 0, W: 1, H: 1}}})

	got := mustGeometry(t, g, 1)
	if got.W != MinW || got.H != MinH {
		t.Fatalf("size = %dx%d, want %dx%d", got.W, got.H, MinW, MinH)
	}
	if got.X+got.W > Columns {
		t.Fatalf("panel overflows grid: %+v", got)
	}

	g.Resize(1, -3, -3)
	got = mustGeometry(t, g, 1)
	if got.W != MinW || got.H != MinH {
		t.Fatalf("after shrink size = %dx%d, want %dx%d", got.W, got.H, MinW, MinH)
	}

	g.Resize(1, 20, 0)
	if got = mustGeometry(t, g, 1); got.W != Columns || got.X != 0 {
		t.Fatalf("after grow = %+v, want full width", got)
	}
}

func TestGridResolvesOverlap(t *testing.T) {
	g := NewGrid(Columns)
	g.Init([]Panel{
		panel(1, core.Rect{X: 0, Y: 0, W: 6, H: 4}),
		panel(2, core.Rect{X: 2, Y: 1, W: 6, H: 4}),
	})

	a, b := mustGeometry(t, g, 1), mustGeometry(t, g, 2)
	if overlaps(a, b) {
		t.Fatalf("panels overlap: %+v %+v", a, b)
	}
	if b.Y != 4 {
		t.Fatalf("panel 2 y = %d, want 4", b.Y)
	}
}

func TestGridMoveDownSwapsWithPanelBelow(t *testing.T) {
	g := NewGrid(Columns)
	g.Init([]Panel{
		panel(1, core.Rect{X: 0, Y: 0, W: 6, H: 4}),
		panel(2, core.Rect{X: 0, Y: 4, W: 6, H: 4}),
	})

	if !g.Move(1, 0, 1) {
		t.Fatal("Move() = false")
	}
	if got := mustGeometry(t, g, 2); got.Y != 0 {
		t.Fatalf("panel 2 y = %d, want 0", got.Y)
	}
	if got := mustGeometry(t, g, 1); got.Y != 4 {
		t.Fatalf("panel 1 y = %d, want 4", got.Y)
	}
}

func TestGridMoveUpSwapsWithPanelAbove(t *testing.T) {
	g := NewGrid(Columns)
	g.Init([]Panel{
		panel(1, core.Rect{X: 0, Y: 0, W: 6, H: 4}),
		panel(2, core.Rect{X: 0, Y: 4, W: 6, H: 4}),
	})

	g.Move(2, 0, -1)
	if got := mustGeometry(t, g, 2); got.Y != 0 {
		t.Fatalf("panel 2 y = %d, want 0", got.Y)
	}
	if got := mustGeometry(t, g, 1); got.Y != 4 {
		t.Fatalf("panel 1 y = %d, want 4", got.Y)
	}
}

func TestGridMoveHorizontal(t *testing.T) {
	g := NewGrid(Columns)
	g.Init([]Panel{panel(1, core.Rect{X: 0, Y: 0, W: 6, H: 4})})

	g.Move(1, 3, 0)
	if got := mustGeometry(t, g, 1); got.X != 3 {
		t.Fatalf("x = %d, want 3", got.X)
	}
	g.Move(1, 100, 0)
	if got := mustGeometry(t, g, 1); got.X != 6 {
		t.Fatalf("x = %d, want clamp to 6", got.X)
	}
}

func TestGridDestroyDropsNodes(t *testing.T) {
	g := NewGrid(0)
	if g.Columns() != Columns {
		t.Fatalf("Columns() = %d, want %d", g.Columns(), Columns)
	}
	g.Init([]Panel{panel(1, core.DefaultRect(0))})
	g.Destroy()

	if g.Initialized() {
		t.Fatal("Initialized() = true after Destroy")
	}
	if _, ok := g.Geometry(1); ok {
		t.Fatal("Geometry after Destroy should miss")
	}
	if g.Move(1, 1, 0) {
		t.Fatal("Move after Destroy should fail")
	}
}

func TestGridUnknownPanel(t *testing.T) {
	g := NewGrid(Columns)
	g.Init([]Panel{panel(1, core.DefaultRect(0))})
	if _, ok := g.Geometry(42); ok {
		t.Fatal("Geometry(42) should miss")
	}
	if g.Resize(42, 1, 1) {
		t.Fatal("Resize(42) should fail")
	}
}

func TestGridHeight(t *testing.T) {
	g := NewGrid(Columns)
	g.Init([]Panel{
		panel(1, core.DefaultRect(0)),
		panel(2, core.DefaultRect(2)),
	})
	if got := g.Height(); got != 8 {
		t.Fatalf("Height() = %d, want 8", got)
	}
}
