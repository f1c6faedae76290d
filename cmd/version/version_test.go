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
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo(t *testing.T) {
	Version, GitCommit = "v1.2.3", "4f3c2a1"
	info := BuildInfo()
	assert.Contains(t, info, "v1.2.3")
	assert.Contains(t, info, "4f3c2a1")
}

func TestFromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.1.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "9b1d7e0"},
			{Key: "vcs.time", Value: "2026-10-19T08:00:00Z"},
		},
	}
	version, commit, buildTime := fromBuildInfo(info, "unknown-version", "unknown-commit", "unknown-buildtime")
	assert.Equal(t, "v0.1.0", version)
	assert.Equal(t, "9b1d7e0", commit)
	assert.Equal(t, "2026-10-19T08:00:00Z", buildTime)

	// ldflags win over stamps
	version, commit, buildTime = fromBuildInfo(info, "v2.0.0", "abcdef0", "today")
	assert.Equal(t, "v2.0.0", version)
	assert.Equal(t, "abcdef0", commit)
	assert.Equal(t, "today", buildTime)

	// development builds keep the default version
	version, _, _ = fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "unknown-version", "unknown-commit", "unknown-buildtime")
	assert.Equal(t, "unknown-version", version)
}
