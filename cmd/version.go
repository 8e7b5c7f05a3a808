package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Version returns a `version` command to be added to any cobra (root) command.
func Version(name string) *cobra.Command {
	short := "Print " + name + " version"
	if strings.TrimSpace(name) == "" {
		short = "Print version"
	}

	return &cobra.Command{
		Use:                   "version",
		Short:                 short,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(c *cobra.Command, _ []string) {
			prefix := "version"
			if strings.TrimSpace(name) != "" {
				prefix = name + " version"
			}

			_, _ = fmt.Fprintf(c.OutOrStdout(), "%s: %s\n", prefix, ReadBuildInfo())
		},
	}
}

// BuildInfo is the version control information the binary was built from.
type BuildInfo struct {
	Revision string
	Time     string
	// Modified is true, if the binary contains uncommitted code.
	Modified bool
}

// String returns the revision and its commit time.
// Binaries built from uncommitted code are reported as @latest at the current time.
func (b BuildInfo) String() string {
	if b.Modified || b.Revision == "" {
		return "@latest from " + time.Now().UTC().Format(time.RFC3339)
	}

	return b.Revision + " from " + b.Time
}

// ReadBuildInfo returns the version control information of the running binary.
// The information is only available to binaries built by `go build`:
// `go run` and `go test` do not contain it.
func ReadBuildInfo() BuildInfo {
	var b BuildInfo

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings { // called from a Go test info.Settings are always empty: []
			switch setting.Key {
			case "vcs.revision":
				b.Revision = setting.Value
			case "vcs.time":
				b.Time = setting.Value
			case "vcs.modified":
				b.Modified = setting.Value == "true"
			}
		}
	}

	return b
}
