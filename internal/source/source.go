// Package source fetches the branch payload, either from the dashboard API
// over HTTP or from a local SQLite database.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janekbaraniewski/branchboard/internal/config"
	"github.com/janekbaraniewski/branchboard/internal/core"
)

var ErrHTTPStatus = errors.New("unexpected HTTP status")

type Fetcher interface {
	Fetch(ctx context.Context) (core.APIResponse, error)
}

// New builds the fetcher selected by cfg.
func New(cfg config.SourceConfig) (Fetcher, error) {
	switch cfg.Kind {
	case config.SourceSQLite:
		if cfg.DatabasePath == "" {
			return nil, fmt.Errorf("sqlite source: database_path is empty")
		}
		return NewSQLiteFetcher(cfg.DatabasePath, cfg.Months), nil
	case config.SourceHTTP, "":
		f := NewHTTPFetcher(cfg.Endpoint, cfg.Months)
		if cfg.TimeoutSeconds > 0 {
			f.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
