// Package version carries build identification, set at link time via ldflags.
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String reports the full build identification on one line.
func String() string {
	return fmt.Sprintf("staffscan %s (%s, built %s)", Version, GitSHA, BuildTime)
}
