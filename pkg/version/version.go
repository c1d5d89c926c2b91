// Package version records build metadata for the astdiff binary, injected
// at link time via -ldflags.
package version

// Build metadata, overridden by the release build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
