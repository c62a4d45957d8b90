// Package version carries the build metadata stamped into release binaries.
package version

import (
	"fmt"
	"runtime"
)

// Stamped at release time via
// -ldflags "-X github.com/queuedesk/queuedesk-go/internal/version.Version=...".
// Development builds keep the defaults.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is a snapshot of the build metadata plus the runtime it runs on
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Platform  string
}

// GetInfo returns the build metadata for this binary
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the one-line form shown by `queuedesk version`
func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("QueueDesk %s (%s) built %s with %s for %s",
		i.Version, commit, i.Date, i.GoVersion, i.Platform)
}

// Short returns only the version number
func (i Info) Short() string {
	return i.Version
}
