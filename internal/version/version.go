// Package version provides build-time version information for zendown and
// zendown-callouts.
package version

import "fmt"

// These variables are set at build time via ldflags:
//
//	-X github.com/open-cli-collective/zendown/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns the version line printed by --version.
func Info(program string) string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", program, Version, Commit, Date)
}
