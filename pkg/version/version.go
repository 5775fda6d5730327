// Package version holds build metadata, set at link time with
// -ldflags "-X github.com/labsyspharm/release-tagger/pkg/version.Version=...".
package version

import (
	"fmt"
	"strings"
)

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Info is the build metadata with blank values replaced by their defaults.
type Info struct {
	Version    string
	CommitHash string
	BuildDate  string
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:    orDefault(Version, "dev"),
		CommitHash: orDefault(CommitHash, "unknown"),
		BuildDate:  orDefault(BuildDate, "unknown"),
	}
}

// Summary returns a one-line description such as "1.4.0 (abc1234, built 2024-03-05)".
func Summary() string {
	info := Get()
	return fmt.Sprintf("%s (%s, built %s)", info.Version, info.CommitHash, info.BuildDate)
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
