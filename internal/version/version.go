// Package version carries build-time identification (set via -ldflags) and
// host information used when castwave annotates persisted configuration.
package version

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/castwave/castwave/internal/version.Version=1.4.0 \
//	  -X github.com/castwave/castwave/internal/version.GitExtra=-g1a2b3c4"
var (
	// Version is the semantic version, without the leading "v".
	Version = "0.0.0-dev"
	// GitExtra is an optional suffix identifying the exact build, e.g. a
	// short commit hash.
	GitExtra = ""
	// BuildMode is "debug" for development builds and empty for releases.
	BuildMode = ""
)

// Info is a point-in-time description of the build and the host it runs on.
type Info struct {
	Version   string
	GitExtra  string
	BuildMode string
	Hostname  string
	Sysname   string
	Machine   string
	Release   string
	OSVersion string
}

// Get collects build and host information. Host fields degrade to "unknown"
// when they cannot be determined.
func Get() Info {
	info := Info{
		Version:   Version,
		GitExtra:  GitExtra,
		BuildMode: BuildMode,
		Hostname:  "unknown",
		Sysname:   runtime.GOOS,
		Machine:   runtime.GOARCH,
		Release:   "unknown",
		OSVersion: "unknown",
	}
	if h, err := os.Hostname(); err == nil {
		info.Hostname = h
	}
	fillUname(&info)
	return info
}

// String renders the build identification, e.g. "v1.4.0-g1a2b3c4 [debug]".
func (i Info) String() string {
	s := "v" + i.Version + i.GitExtra
	if i.BuildMode != "" {
		s += " [" + i.BuildMode + "]"
	}
	return s
}

// UTCMillisecond formats t as an ISO-like UTC timestamp with millisecond
// precision, the format used in generated-configuration comments.
func UTCMillisecond(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// HostLine renders the host fields the way the persisted-configuration
// comment expects them.
func (i Info) HostLine() string {
	return fmt.Sprintf("%s (%s %s - %s, %s)", i.Hostname, i.Sysname, i.Machine, i.Release, i.OSVersion)
}
