package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit and BuildTime are set with -ldflags "-X", for example
// -X github.com/heartmarshall/alice-reader-backend/internal/app.Version=1.4.0.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion returns the version string shown in startup logs, /health
// and alicectl --version. Without ldflags the VCS revision recorded by the
// Go toolchain is used as the commit.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "" {
		commit = vcsRevision()
	}
	switch {
	case commit == "":
		return Version
	case built == "":
		return fmt.Sprintf("%s (commit: %s)", Version, commit)
	default:
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, built)
	}
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}
