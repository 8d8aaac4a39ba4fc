// Package appupdate compares the running build against the latest published
// release.
package appupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	binaryName              = "branchboard"
	defaultLatestReleaseURL = "https://api.github.com/repos/janekbaraniewski/branchboard/releases/latest"
	defaultRequestTimeout   = 2 * time.Second
)

type InstallMethod string

const (
	InstallMethodUnknown   InstallMethod = "unknown"
	InstallMethodHomebrew  InstallMethod = "homebrew"
	InstallMethodGoInstall InstallMethod = "go_install"
)

type CheckOptions struct {
	CurrentVersion   string
	ExecutablePath   string
	LatestReleaseURL string
	Timeout          time.Duration
	HTTPClient       *http.Client
}

type Result struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
	InstallMethod   InstallMethod
	UpgradeHint     string
}

// Check fetches the latest release tag. Development and pre-release builds
// are never compared and return an empty LatestVersion without error.
func Check(ctx context.Context, opts CheckOptions) (Result, error) {
	current := canonicalRelease(opts.CurrentVersion)
	method := detectInstallMethod(executablePath(opts.ExecutablePath))
	result := Result{
		CurrentVersion: current,
		InstallMethod:  method,
		UpgradeHint:    upgradeHint(method),
	}
	if current == "" {
		return result, nil
	}

	latest, err := latestRelease(ctx, opts, current)
	if err != nil {
		return result, err
	}
	result.LatestVersion = latest
	result.UpdateAvailable = semver.Compare(latest, current) > 0
	return result, nil
}

func latestRelease(ctx context.Context, opts CheckOptions, current string) (string, error) {
	endpoint := strings.TrimSpace(opts.LatestReleaseURL)
	if endpoint == "" {
		endpoint = defaultLatestReleaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", binaryName+"/"+current)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var payload struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode release payload: %w", err)
	}

	latest := canonicalRelease(payload.TagName)
	if latest == "" {
		return "", fmt.Errorf("latest release tag is not a stable semver: %q", payload.TagName)
	}
	return latest, nil
}

// canonicalRelease returns the canonical "vX.Y.Z" form of a stable release
// version, or "" for anything else.
func canonicalRelease(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return ""
	}
	return semver.Canonical(v)
}

func executablePath(explicit string) string {
	p := strings.TrimSpace(explicit)
	if p == "" {
		exe, err := os.Executable()
		if err != nil {
			return ""
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		p = exe
	}
	return strings.ToLower(filepath.ToSlash(filepath.Clean(p)))
}

func detectInstallMethod(path string) InstallMethod {
	switch {
	case path == "" || path == ".":
		return InstallMethodUnknown
	case strings.Contains(path, "/cellar/"+binaryName+"/"):
		return InstallMethodHomebrew
	case strings.HasSuffix(path, "/go/bin/"+binaryName), strings.HasSuffix(path, "/go/bin/"+binaryName+".exe"):
		return InstallMethodGoInstall
	}
	if gobin := strings.TrimSpace(os.Getenv("GOBIN")); gobin != "" {
		dir := strings.ToLower(filepath.ToSlash(filepath.Clean(gobin)))
		if strings.HasPrefix(path, dir+"/"+binaryName) {
			return InstallMethodGoInstall
		}
	}
	return InstallMethodUnknown
}

func upgradeHint(method InstallMethod) string {
	switch method {
	case InstallMethodHomebrew:
		return "brew upgrade janekbaraniewski/tap/" + binaryName
	case InstallMethodGoInstall:
		return "go install github.com/janekbaraniewski/branchboard/cmd/branchboard@latest"
	default:
		return "download the latest release from https://github.com/janekbaraniewski/branchboard/releases"
	}
}
