package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/janekbaraniewski/branchboard/internal/config"
	"github.com/janekbaraniewski/branchboard/internal/core"
	"github.com/janekbaraniewski/branchboard/internal/export"
	"github.com/janekbaraniewski/branchboard/internal/source"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newExportCommand(cfg config.Config) *cobra.Command {
	var (
		format string
		out    string
		months int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the projected branch series",
		Long:  "Fetch the configured data source once and write every visible chart as xlsx, json or a terminal table.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == export.FormatXLSX && out == "" {
				return fmt.Errorf("xlsx export needs --out")
			}
			if months > 0 {
				cfg.Source.Months = months
			}

			useColors := out == "" && term.IsTerminal(int(os.Stdout.Fd()))
			n, err := runExport(cmd.Context(), cfg, f, out, cmd.OutOrStdout(), useColors)
			if err != nil {
				return err
			}
			if out != "" {
				green := color.New(color.FgGreen).SprintFunc()
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %d branches written to %s\n", green("✓"), n, out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.FormatTable), "output format: xlsx, json or table")
	cmd.Flags().StringVar(&out, "out", "", "write to this file instead of stdout")
	cmd.Flags().IntVar(&months, "months", 0, "months of history to request (default from config)")
	return cmd
}

// runExport fetches one payload and writes it to out, or to stdout when out
// is empty. The output file is only created once the fetch has succeeded and
// is removed again if writing fails. It returns the branch count.
func runExport(ctx context.Context, cfg config.Config, format export.Format, out string, stdout io.Writer, useColors bool) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fetcher, err := source.New(cfg.Source)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Source.TimeoutSeconds)*time.Second+time.Second)
	defer cancel()

	resp, err := fetcher.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching branch data: %w", err)
	}
	branches := core.Normalize(resp, core.NormalizeOptions{Locale: cfg.UI.Locale})
	opts := export.Options{UseColors: useColors}

	if out == "" {
		if err := export.Write(stdout, format, branches, opts); err != nil {
			return 0, fmt.Errorf("writing %s: %w", format, err)
		}
		return len(branches), nil
	}

	file, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", out, err)
	}
	err = export.Write(file, format, branches, opts)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(out)
		return 0, fmt.Errorf("writing %s: %w", out, err)
	}
	return len(branches), nil
}
