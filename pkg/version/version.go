// Package version carries build metadata stamped at link time.
package version

import (
	"runtime/debug"
)

// Build metadata, set with -ldflags "-X .../pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const vcsRevisionKey = "vcs.revision"

// InitBinaryVersion fills unset metadata from the embedded build info, so
// `go install` binaries report their module version and VCS revision.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Commit != "none" {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == vcsRevisionKey {
			Commit = setting.Value

			return
		}
	}
}

// String formats the metadata for a version command.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
