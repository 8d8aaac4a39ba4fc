package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/janekbaraniewski/branchboard/internal/appupdate"
	"github.com/janekbaraniewski/branchboard/internal/version"
	"github.com/spf13/cobra"
)

type checkFunc func(context.Context, appupdate.CheckOptions) (appupdate.Result, error)

func newVersionCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "branchboard %s\n", version.String())
			if !check {
				return nil
			}
			return printUpdateStatus(cmd.Context(), cmd.OutOrStdout(), version.Version, appupdate.Check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check for a newer release")
	return cmd
}

func printUpdateStatus(ctx context.Context, w io.Writer, current string, check checkFunc) error {
	res, err := check(ctx, appupdate.CheckOptions{CurrentVersion: current})
	if err != nil {
		return fmt.Errorf("update check: %w", err)
	}

	switch {
	case res.LatestVersion == "":
		fmt.Fprintln(w, "Update check skipped for development builds.")
	case res.UpdateAvailable:
		yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
		fmt.Fprintf(w, "%s %s → %s\n", yellow("Update available:"), res.CurrentVersion, res.LatestVersion)
		if res.UpgradeHint != "" {
			fmt.Fprintf(w, "  %s\n", res.UpgradeHint)
		}
	default:
		fmt.Fprintf(w, "%s is the latest release.\n", res.CurrentVersion)
	}
	return nil
}
