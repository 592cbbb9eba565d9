package core

import "runtime/debug"

// Build metadata, injected with
//
//	go build -ldflags "-X bookforge/core.Version=v1.2.0 -X bookforge/core.GitCommit=$(git rev-parse --short HEAD)"
//
// When left unset, GetGitCommit and GetBuildTime fall back to the VCS
// stamp the toolchain embeds in module builds.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// readBuildSetting is swapped in tests.
var readBuildSetting = func(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// GetVersion returns the release version, "dev" for local builds.
func GetVersion() string {
	return Version
}

// GetBuildTime returns the build or commit timestamp.
func GetBuildTime() string {
	return stamped(BuildTime, "vcs.time")
}

// GetGitCommit returns the commit hash, shortened to 12 characters when it
// comes from the embedded VCS stamp.
func GetGitCommit() string {
	c := stamped(GitCommit, "vcs.revision")
	if c != GitCommit && len(c) > 12 {
		c = c[:12]
	}
	return c
}

func stamped(injected, key string) string {
	if injected != "unknown" && injected != "" {
		return injected
	}
	if v := readBuildSetting(key); v != "" {
		return v
	}
	return "unknown"
}
