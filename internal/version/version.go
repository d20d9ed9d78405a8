// Package version carries build metadata injected with -ldflags -X.
package version

import "fmt"

var (
	// Version is the release of the region monitor tools.
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
)

// String formats the build metadata for -version output.
func String() string {
	return fmt.Sprintf("%s (%s)", Version, GitSHA)
}
