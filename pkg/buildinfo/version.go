// Package buildinfo reports the version of the running binary.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/nexusfab/tiletopo/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/nexusfab/tiletopo/pkg/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/tiletopo
//
// Unstamped builds fall back to the module version and VCS settings the Go
// toolchain embeds, so `go install` binaries still identify themselves.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Stamped by ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build identity.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	// Modified is set when the working tree had uncommitted changes.
	Modified bool `json:"modified,omitempty"`
}

var (
	once     sync.Once
	resolved Info
)

// Get returns the build identity, resolving the embedded build settings on
// first use.
func Get() Info {
	once.Do(func() {
		bi, _ := debug.ReadBuildInfo()
		resolved = resolve(Info{Version: Version, Commit: Commit, Date: Date}, bi)
	})
	return resolved
}

// resolve fills the unstamped fields of info from bi.
func resolve(info Info, bi *debug.BuildInfo) Info {
	if bi == nil {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String returns the formatted build information.
func String() string {
	i := Get()
	commit := i.Commit
	if i.Modified {
		commit += " (modified)"
	}
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, commit, i.Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
