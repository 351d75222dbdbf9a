package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the module version for released binaries and
// devel-<VERSION>[+rev][-dirty] for local builds.
func Version() string {
	base := strings.TrimSpace(embeddedVersion)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	v := "devel-" + base
	if rev := settings["vcs.revision"]; len(rev) >= 7 {
		v += "+" + rev[:7]
	}
	if settings["vcs.modified"] == "true" {
		v += "-dirty"
	}
	return v
}
