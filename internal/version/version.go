// Package version holds build information injected at link time.
package version

// Build information set by ldflags:
//
//	-X github.com/arthur-debert/termlinks/internal/version.Version={{.Version}}
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
