// Package export dumps the projected dashboard series to xlsx, json or a
// terminal table.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/janekbaraniewski/branchboard/internal/core"
)

type Format string

const (
	FormatXLSX  Format = "xlsx"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatJSON, FormatTable:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want xlsx, json or table)", s)
	}
}

// Row is one bar of one chart: a single projected point.
type Row struct {
	BranchID int     `json:"branch_id"`
	Branch   string  `json:"branch"`
	Slot     int     `json:"slot"`
	Metric   string  `json:"metric"`
	Unit     string  `json:"unit"`
	Sort     string  `json:"sort"`
	Period   string  `json:"period"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Height   float64 `json:"height"`
}

// Rows flattens the visible charts of branches in display order. Slots are
// numbered from 1. Hidden branches, hidden slots and slots sorted "none" are
// skipped, matching what the dashboard draws.
func Rows(branches []core.Branch) []Row {
	var rows []Row
	for _, b := range branches {
		if !b.Visible {
			continue
		}
		for i, slot := range b.Slots {
			if !slot.Visible {
				continue
			}
			p, ok := core.Project(slot.Series, slot.Sort)
			if !ok {
				continue
			}
			heights := core.BarHeights(p.Values)
			for j := range p.Values {
				rows = append(rows, Row{
					BranchID: b.ID,
					Branch:   b.Name,
					Slot:     i + 1,
					Metric:   p.Name,
					Unit:     p.Unit,
					Sort:     slot.Sort.String(),
					Period:   p.Periods[j],
					Label:    p.Labels[j],
					Value:    p.Values[j],
					Height:   heights[j],
				})
			}
		}
	}
	return rows
}

type Options struct {
	UseColors bool
}

// Write renders branches in the given format.
func Write(w io.Writer, format Format, branches []core.Branch, opts Options) error {
	rows := Rows(branches)
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	case FormatTable:
		return WriteTable(w, rows, opts)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
