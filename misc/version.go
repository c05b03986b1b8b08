// Package misc holds program identity which is set at link time.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X kryweb/misc.version=... -X kryweb/misc.gitHash=...".
var (
	appName = "kryweb"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash program was built from. When it was not
// provided at link time VCS information from build info is used.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
