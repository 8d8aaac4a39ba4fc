package core

import (
	"strings"

	"github.com/samber/lo"
)

// NormalizeOptions controls how a response is turned into branch records.
type NormalizeOptions struct {
	Locale string // month label locale, "en" when empty
}

// Normalize builds one Branch per response branch, in response order.
//
// Every branch gets exactly SlotCount slots keyed by metric_type_id 1..6.
// Metrics outside that range are ignored; a missing slot becomes an empty
// series named "Metric N". All slots start visible and sorted by period, and
// every branch starts visible at its default grid position.
func Normalize(resp APIResponse, opts NormalizeOptions) []Branch {
	return lo.Map(resp.Branches, func(src APIBranch, i int) Branch {
		return normalizeBranch(src, i, opts)
	})
}

func normalizeBranch(src APIBranch, index int, opts NormalizeOptions) Branch {
	b := Branch{
		ID:      src.BranchID,
		Name:    strings.TrimSpace(src.BranchName),
		Code:    src.BranchCode,
		City:    src.City,
		Status:  src.Status,
		Color:   index % PaletteSize,
		Visible: true,
		Rect:    DefaultRect(index),
	}

	for i := range b.Slots {
		b.Slots[i] = Slot{Series: EmptySeries(i), Visible: true, Sort: SortByPeriod}
	}

	for _, m := range src.Metrics {
		slot := m.MetricTypeID - 1
		if !ValidSlot(slot) {
			continue
		}
		b.Slots[slot].Series = normalizeSeries(m, slot, opts)
	}
	return b
}

func normalizeSeries(m APIMetric, slot int, opts NormalizeOptions) Series {
	name := strings.TrimSpace(m.MetricName)
	if name == "" {
		name = DefaultSlotName(slot)
	}

	s := Series{Name: name, Unit: m.UnitSymbol(), Points: []Point{}}
	if m.DataMalformed {
		return s
	}

	s.Points = lo.Map(m.Data, func(d APIDataPoint, _ int) Point {
		return Point{
			Period: d.Month,
			Label:  PeriodLabel(d.Month, opts.Locale),
			Value:  d.Value,
		}
	})
	return s
}
