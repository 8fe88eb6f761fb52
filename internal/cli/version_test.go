package cli

import (
	"runtime/debug"
	"testing"

	"github.com/quilldocs/quill/internal/buildinfo"
)

func stubBuildStamps(t *testing.T, version, commit, date string) {
	t.Helper()
	origV, origC, origD := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = origV, origC, origD
	})
	buildinfo.Version, buildinfo.Commit, buildinfo.Date = version, commit, date
}

func stubReadBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
}

func TestCurrentVersionInfoStampsOnly(t *testing.T) {
	stubBuildStamps(t, "v1.4.0", "abc1234", "2026-01-02T00:00:00Z")
	stubReadBuildInfo(t, nil, false)

	info := currentVersionInfo()
	if info.Version != "v1.4.0" || info.Commit != "abc1234" || info.CommitTime != "2026-01-02T00:00:00Z" {
		t.Errorf("info = %+v", info)
	}
	if info.ModulePath != defaultModulePath {
		t.Errorf("ModulePath = %q, want %q", info.ModulePath, defaultModulePath)
	}
}

func TestCurrentVersionInfoVCSOverridesStamps(t *testing.T) {
	stubBuildStamps(t, "v1.4.0", "stamped", "")
	stubReadBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Path: "example.com/fork/quill", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)

	info := currentVersionInfo()
	if info.Version != "v1.4.0" {
		t.Errorf("Version = %q, want the stamped tag when the module version is (devel)", info.Version)
	}
	if info.ModulePath != "example.com/fork/quill" {
		t.Errorf("ModulePath = %q", info.ModulePath)
	}
	if info.Commit != "deadbeef" {
		t.Errorf("Commit = %q, want the VCS revision", info.Commit)
	}
	if !info.Modified {
		t.Error("Modified = false, want true")
	}
}

func TestCurrentVersionInfoDevelDefault(t *testing.T) {
	stubBuildStamps(t, "", "", "")
	stubReadBuildInfo(t, nil, false)

	if info := currentVersionInfo(); info.Version != "devel" {
		t.Errorf("Version = %q, want devel", info.Version)
	}
}
