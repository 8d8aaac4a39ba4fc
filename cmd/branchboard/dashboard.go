package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/branchboard/internal/config"
	"github.com/janekbaraniewski/branchboard/internal/source"
	"github.com/janekbaraniewski/branchboard/internal/tui"
)

func RunDashboard(cfg config.Config) {
	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		log.Printf("themes: %v", err)
	}
	tui.SetThemeByName(cfg.Theme)

	fetcher, err := source.New(cfg.Source)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("data source: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewModel(tui.Options{
		Title:       cfg.UI.Title,
		Locale:      cfg.UI.Locale,
		LayoutDelay: time.Duration(cfg.UI.LayoutDelayMS) * time.Millisecond,
		Fetch:       fetcher.Fetch,
		Context:     ctx,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	reload := &reloader{source: cfg.Source}
	if err := config.Watch(ctx, config.ConfigPath(), func(next config.Config, err error) {
		program.Send(reload.message(next, err))
	}); err != nil {
		log.Printf("config watch disabled: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
}

// reloader turns watcher results into dashboard messages. A new fetcher is
// built only when the source settings change; an unusable source keeps the
// previous one and surfaces the error.
type reloader struct {
	source config.SourceConfig
}

func (r *reloader) message(cfg config.Config, err error) tui.ConfigReloadedMsg {
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return tui.ConfigReloadedMsg{Err: err}
	}
	msg := tui.ConfigReloadedMsg{Config: cfg}
	if cfg.Source == r.source {
		return msg
	}
	fetcher, err := source.New(cfg.Source)
	if err != nil {
		return tui.ConfigReloadedMsg{Err: err}
	}
	r.source = cfg.Source
	msg.Fetch = fetcher.Fetch
	return msg
}
