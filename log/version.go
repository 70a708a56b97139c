package log

import (
	"os"
	"runtime/debug"
)

// VersionLogKey is the key of the version field added to every log line.
var VersionLogKey = "v"

// Version tags the global logger, and sentry events as "version".
//
// It's read when the global logger is set up (Init* and ReplaceGlobal) and
// when sentry is initialized, so set it before those calls,
// or stamp it at build time:
//
//	go build -ldflags "-X github.com/reddit/automate.go/log.Version=$(git rev-parse HEAD)"
//
// When not stamped it's resolved from the environment variables in
// VersionEnvVars, then from the vcs revision in the build info,
// then from the tagged version of the main module.
var Version string

// VersionEnvVars are consulted in order when Version is not stamped.
var VersionEnvVars = []string{"AUTOMATE_VERSION", "VERSION"}

func init() {
	if Version != "" {
		return
	}
	info, _ := debug.ReadBuildInfo()
	Version = resolveVersion(os.Getenv, info)
}

func resolveVersion(getenv func(string) string, info *debug.BuildInfo) string {
	for _, key := range VersionEnvVars {
		if v := getenv(key); v != "" {
			return v
		}
	}
	if info == nil {
		return ""
	}

	var revision string
	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	switch {
	case revision != "" && modified:
		return revision + "-dirty"
	case revision != "":
		return revision
	case info.Main.Version != "(devel)":
		return info.Main.Version
	}
	return ""
}
