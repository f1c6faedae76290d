// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Default build-time variable.
// These values are overridden via ldflags
var (
	Version   = "unknown-version"
	GitCommit = "unknown-commit"
	BuildTime = "unknown-buildtime"
)

// BuildInfo describes the binary. Values not set by ldflags are taken from
// the module and VCS stamps of the Go toolchain when present.
func BuildInfo() string {
	version, commit, buildTime := Version, GitCommit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		version, commit, buildTime = fromBuildInfo(info, version, commit, buildTime)
	}
	var builder strings.Builder
	_, _ = fmt.Fprintln(&builder, "Version:\t", version)
	_, _ = fmt.Fprintln(&builder, "Go version:\t", runtime.Version())
	_, _ = fmt.Fprintln(&builder, "Git commit:\t", commit)
	_, _ = fmt.Fprintln(&builder, "Built:\t\t", buildTime)
	_, _ = fmt.Fprintf(&builder, "OS/Arch:\t %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return builder.String()
}

func fromBuildInfo(info *debug.BuildInfo, version, commit, buildTime string) (string, string, string) {
	if version == "unknown-version" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == "unknown-commit" {
				commit = setting.Value
			}
		case "vcs.time":
			if buildTime == "unknown-buildtime" {
				buildTime = setting.Value
			}
		}
	}
	return version, commit, buildTime
}
