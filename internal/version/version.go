// Package version holds build metadata injected through ldflags:
//
//	-X 'github.com/janekbaraniewski/branchboard/internal/version.Version=v0.3.0'
//	-X 'github.com/janekbaraniewski/branchboard/internal/version.CommitHash=abc1234'
//	-X 'github.com/janekbaraniewski/branchboard/internal/version.BuildDate=2026-01-02'
package version

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

func String() string {
	return Version + " (" + CommitHash + ") built " + BuildDate
}

// IsRelease reports whether the binary was built from a tagged release.
func IsRelease() bool {
	return Version != "" && Version != "dev"
}
