// Package version holds build-time version information.
// The variables are overridden at build time through ldflags.
package version

// Build information. Populated at build-time via -ldflags.
//
//nolint:gochecknoglobals // These variables are set at build time via ldflags.
var (
	// Version is the application version.
	Version = "1.0.0"
	// Commit is the git commit hash the binary was built from.
	Commit = "none"
	// BuildTime is the time the binary was built.
	BuildTime = "unknown"
)

// Short returns just the version string.
func Short() string {
	return Version
}

// Full returns the complete version information.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
