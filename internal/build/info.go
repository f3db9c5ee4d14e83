// Package build exposes build-time metadata injected via ldflags.
package build

import "fmt"

// Version, Commit, and Branch are set at build time by:
//
//	-ldflags "-X github.com/joestump/ambient-prompt/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// UserAgent is sent by the prompt client on every outbound request.
func UserAgent() string {
	return "ambient-prompt/" + Version
}

// String renders the build metadata on one line for the version command.
func String() string {
	return fmt.Sprintf("ambient-prompt %s (commit %s, branch %s)", Version, Commit, Branch)
}
