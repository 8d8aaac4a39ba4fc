package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Projection is a display-ready copy of a series in its sorted order.
type Projection struct {
	Name    string
	Unit    string
	Labels  []string
	Values  []float64
	Periods []string
}

func (p Projection) Empty() bool { return len(p.Values) == 0 }

// Project orders a copy of s according to mode. It returns false for
// SortNone, meaning the chart is not rendered at all. The input series is
// never modified.
func Project(s Series, mode SortMode) (Projection, bool) {
	if mode == SortNone {
		return Projection{}, false
	}

	points := make([]Point, len(s.Points))
	copy(points, s.Points)

	switch mode {
	case SortByPeriod:
		sortPointsByPeriod(points)
	case SortByValue:
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Value > points[j].Value
		})
	}

	p := Projection{
		Name:    s.Name,
		Unit:    s.Unit,
		Labels:  make([]string, len(points)),
		Values:  make([]float64, len(points)),
		Periods: make([]string, len(points)),
	}
	for i, pt := range points {
		p.Labels[i] = pt.Label
		p.Values[i] = pt.Value
		p.Periods[i] = pt.Period
	}
	return p, true
}

// sortPointsByPeriod sorts parseable periods chronologically. Periods that
// cannot be parsed go last in their original order.
func sortPointsByPeriod(points []Point) {
	type key struct {
		t  int64
		ok bool
	}
	keys := make([]key, len(points))
	idx := make([]int, len(points))
	for i, pt := range points {
		t, ok := ParsePeriod(pt.Period)
		keys[i] = key{t: t.Unix(), ok: ok}
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		if !ka.ok {
			return false
		}
		return ka.t < kb.t
	})

	sorted := make([]Point, len(points))
	for i, j := range idx {
		sorted[i] = points[j]
	}
	copy(points, sorted)
}

// BarHeights scales values to percentages of the largest value. Every height
// is 0 when values is empty or the maximum is not positive; results are
// clamped to [0, 100].
func BarHeights(values []float64) []float64 {
	heights := make([]float64, len(values))
	if len(values) == 0 {
		return heights
	}

	maxV := math.Inf(-1)
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}
	if maxV <= 0 || math.IsInf(maxV, 0) || math.IsNaN(maxV) {
		return heights
	}

	for i, v := range values {
		h := v / maxV * 100
		switch {
		case math.IsNaN(h), h < 0:
			h = 0
		case h > 100:
			h = 100
		}
		heights[i] = h
	}
	return heights
}

// ChartColumns is the number of chart columns inside a panel for the given
// number of active slots.
func ChartColumns(active int) int {
	switch active {
	case 1:
		return 1
	case 2, 4:
		return 2
	default:
		return 3
	}
}

// FormatValue renders a value with two decimals and an optional unit.
func FormatValue(v float64, unit string) string {
	s := fmt.Sprintf("%.2f", v)
	if unit = strings.TrimSpace(unit); unit != "" {
		s += " " + unit
	}
	return s
}
