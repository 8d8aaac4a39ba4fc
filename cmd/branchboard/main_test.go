package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/janekbaraniewski/branchboard/internal/appupdate"
	"github.com/janekbaraniewski/branchboard/internal/config"
	"github.com/janekbaraniewski/branchboard/internal/export"
)

const payload = `{"branches":[
{"branch_id":1,"branch_name":"North","branch_code":"N1","city":"Ankara","status":"active","metrics":[
 {"metric_type_id":1,"metric_name":"Revenue","unit":{"unit_symbol":"₺"},
  "data":[{"month":"2024-02","value":20},{"month":"2024-01","value":10}]}]},
{"branch_id":2,"branch_name":"South","branch_code":"S1","city":"Izmir","status":"active","metrics":[]}]}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRunExportJSON(t *testing.T) {
	server := testServer(t)
	cfg := config.DefaultConfig()
	cfg.Source.Endpoint = server.URL

	var buf bytes.Buffer
	n, err := runExport(context.Background(), cfg, export.FormatJSON, "", &buf, false)
	if err != nil {
		t.Fatalf("runExport() error: %v", err)
	}
	if n != 2 {
		t.Errorf("branches = %d, want 2", n)
	}

	var doc struct {
		Rows []export.Row `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(doc.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(doc.Rows))
	}
	if doc.Rows[0].Period != "2024-01" || doc.Rows[1].Value != 20 {
		t.Errorf("rows = %+v", doc.Rows)
	}
}

func TestRunExportFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := config.DefaultConfig()
	cfg.Source.Endpoint = server.URL

	var buf bytes.Buffer
	if _, err := runExport(context.Background(), cfg, export.FormatTable, "", &buf, false); err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Errorf("output written on failure: %q", buf.String())
	}
}

func TestRunExportFetchErrorLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := config.DefaultConfig()
	cfg.Source.Endpoint = server.URL
	out := filepath.Join(t.TempDir(), "branches.xlsx")

	if _, err := runExport(context.Background(), cfg, export.FormatXLSX, out, &bytes.Buffer{}, false); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output file left behind: stat err = %v", err)
	}
}

func TestRunExportWritesFile(t *testing.T) {
	server := testServer(t)
	cfg := config.DefaultConfig()
	cfg.Source.Endpoint = server.URL
	out := filepath.Join(t.TempDir(), "branches.json")

	var stdout bytes.Buffer
	n, err := runExport(context.Background(), cfg, export.FormatJSON, out, &stdout, false)
	if err != nil {
		t.Fatalf("runExport() error: %v", err)
	}
	if n != 2 || stdout.Len() != 0 {
		t.Errorf("n = %d, stdout = %q", n, stdout.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), `"branch": "North"`) {
		t.Errorf("file content = %s", data)
	}
}

func TestExportCommandWritesTable(t *testing.T) {
	server := testServer(t)
	cfg := config.DefaultConfig()
	cfg.Source.Endpoint = server.URL

	cmd := newExportCommand(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--format", "table"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out.String(), "North") || !strings.Contains(out.String(), "2 bars") {
		t.Errorf("table output = %q", out.String())
	}
}

func TestExportCommandRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"--format", "csv"}},
		{"xlsx to stdout", []string{"--format", "xlsx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newExportCommand(config.DefaultConfig())
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPrintUpdateStatus(t *testing.T) {
	tests := []struct {
		name   string
		result appupdate.Result
		want   string
	}{
		{"dev", appupdate.Result{}, "skipped"},
		{"latest", appupdate.Result{CurrentVersion: "v1.2.0", LatestVersion: "v1.2.0"}, "v1.2.0 is the latest release"},
		{"update", appupdate.Result{UpdateAvailable: true, CurrentVersion: "v1.2.0", LatestVersion: "v1.3.0", UpgradeHint: "go install x@latest"}, "go install x@latest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := printUpdateStatus(context.Background(), &buf, "v1.2.0", func(_ context.Context, opts appupdate.CheckOptions) (appupdate.Result, error) {
				if opts.CurrentVersion != "v1.2.0" {
					t.Errorf("CurrentVersion = %q", opts.CurrentVersion)
				}
				return tt.result, nil
			})
			if err != nil {
				t.Fatalf("printUpdateStatus() error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrintUpdateStatusError(t *testing.T) {
	err := printUpdateStatus(context.Background(), &bytes.Buffer{}, "v1.0.0", func(context.Context, appupdate.CheckOptions) (appupdate.Result, error) {
		return appupdate.Result{}, errors.New("rate limited")
	})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error = %v", err)
	}
}

func TestReloaderBuildsFetcherOnlyOnSourceChange(t *testing.T) {
	cfg := config.DefaultConfig()
	r := &reloader{source: cfg.Source}

	themed := cfg
	themed.Theme = "Nord"
	if msg := r.message(themed, nil); msg.Err != nil || msg.Fetch != nil {
		t.Fatalf("theme change: err=%v fetch=%v", msg.Err, msg.Fetch != nil)
	}

	moved := cfg
	moved.Source.Endpoint = "http://example.test/api/data"
	if msg := r.message(moved, nil); msg.Err != nil || msg.Fetch == nil {
		t.Fatalf("source change: err=%v fetch=%v", msg.Err, msg.Fetch != nil)
	}
	if r.source != moved.Source {
		t.Errorf("reloader source = %+v", r.source)
	}

	broken := cfg
	broken.Source.Kind = config.SourceSQLite
	if msg := r.message(broken, nil); msg.Err == nil {
		t.Fatal("sqlite without database_path should fail")
	}
	if msg := r.message(cfg, errors.New("bad json")); msg.Err == nil {
		t.Fatal("load error not forwarded")
	}
}
