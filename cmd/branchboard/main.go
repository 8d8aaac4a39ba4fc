package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/janekbaraniewski/branchboard/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	if os.Getenv(config.EnvDebug) != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	root := cobra.Command{
		Use:   "branchboard",
		Short: "Branchboard is a terminal dashboard for monthly branch metrics.",
		Run: func(_ *cobra.Command, _ []string) {
			RunDashboard(cfg)
		},
	}

	root.AddCommand(newExportCommand(cfg))
	root.AddCommand(newVersionCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
