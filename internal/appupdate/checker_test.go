package appupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCanonicalRelease(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "with prefix", input: "v1.2.3", want: "v1.2.3"},
		{name: "without prefix", input: "1.2.3", want: "v1.2.3"},
		{name: "short form", input: "v1.2", want: "v1.2.0"},
		{name: "pre-release", input: "v1.2.3-rc.1", want: ""},
		{name: "build metadata", input: "v1.2.3+abc", want: ""},
		{name: "dev", input: "dev", want: ""},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canonicalRelease(tt.input); got != tt.want {
				t.Fatalf("canonicalRelease(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectInstallMethod(t *testing.T) {
	t.Setenv("GOBIN", "")
	tests := []struct {
		path string
		want InstallMethod
	}{
		{path: "/opt/homebrew/cellar/branchboard/0.3.0/bin/branchboard", want: InstallMethodHomebrew},
		{path: "/home/dev/go/bin/branchboard", want: InstallMethodGoInstall},
		{path: "/usr/local/bin/branchboard", want: InstallMethodUnknown},
		{path: "", want: InstallMethodUnknown},
	}
	for _, tt := range tests {
		if got := detectInstallMethod(tt.path); got != tt.want {
			t.Errorf("detectInstallMethod(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckUpdateAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "branchboard/v0.2.0" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte(`{"tag_name":"v0.3.1"}`))
	}))
	defer server.Close()

	res, err := Check(context.Background(), CheckOptions{
		CurrentVersion:   "0.2.0",
		ExecutablePath:   "/home/dev/go/bin/branchboard",
		LatestReleaseURL: server.URL,
		Timeout:          time.Second,
	})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !res.UpdateAvailable || res.LatestVersion != "v0.3.1" {
		t.Fatalf("result = %+v", res)
	}
	if res.InstallMethod != InstallMethodGoInstall {
		t.Errorf("install method = %q", res.InstallMethod)
	}
}

func TestCheckUpToDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name":"0.3.0"}`))
	}))
	defer server.Close()

	res, err := Check(context.Background(), CheckOptions{CurrentVersion: "v0.3.0", ExecutablePath: "/x/branchboard", LatestReleaseURL: server.URL})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if res.UpdateAvailable {
		t.Fatalf("update reported for equal versions: %+v", res)
	}
}

func TestCheckSkipsDevBuild(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	res, err := Check(context.Background(), CheckOptions{CurrentVersion: "dev", ExecutablePath: "/x/branchboard", LatestReleaseURL: server.URL})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if called || res.LatestVersion != "" {
		t.Fatalf("dev build should not query releases: %+v", res)
	}
}

func TestCheckHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := Check(context.Background(), CheckOptions{CurrentVersion: "v1.0.0", ExecutablePath: "/x/branchboard", LatestReleaseURL: server.URL})
	if err == nil {
		t.Fatal("expected error on HTTP 403")
	}
}
