package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/janekbaraniewski/branchboard/internal/core"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

func WriteTable(w io.Writer, rows []Row, opts Options) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Branch", "Slot", "Metric", "Sort", "Label", "Value", "Bar"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	branch := fmt.Sprint
	metric := fmt.Sprint
	if opts.UseColors {
		branch = color.New(color.FgCyan, color.Bold).SprintFunc()
		metric = color.New(color.FgYellow).SprintFunc()
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			branch(r.Branch),
			strconv.Itoa(r.Slot),
			metric(r.Metric),
			r.Sort,
			r.Label,
			core.FormatValue(r.Value, r.Unit),
			fmt.Sprintf("%.0f%%", r.Height),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d bars\n", len(rows))
	return err
}
