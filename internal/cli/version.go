package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quilldocs/quill/internal/buildinfo"
)

const defaultModulePath = "github.com/quilldocs/quill"

// versionInfo is the version command's payload in both output modes.
type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

// Stubbed in tests.
var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show quill version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("quill %s (%s, %s/%s)\n", info.Version, info.GoVersion, info.GOOS, info.GOARCH)
		fmt.Printf("  module  %s\n", info.ModulePath)
		if info.Commit != "" {
			commit := info.Commit
			if info.Modified {
				commit += " (modified)"
			}
			fmt.Printf("  commit  %s\n", commit)
		}
		if info.CommitTime != "" {
			fmt.Printf("  built   %s\n", info.CommitTime)
		}
		return nil
	},
}

// currentVersionInfo seeds from the ldflags-stamped release metadata, then
// overrides with whatever debug.ReadBuildInfo reports. VCS facts win over
// stamps because they describe the binary that is actually running; the
// release tag survives when the module version is the placeholder "(devel)".
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    buildinfo.Version,
		ModulePath: defaultModulePath,
		Commit:     buildinfo.Commit,
		CommitTime: buildinfo.Date,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}
	if info.Version == "" {
		info.Version = "devel"
	}

	bi, ok := readBuildInfo()
	if !ok || bi == nil {
		return info
	}

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	if bi.Main.Path != "" {
		info.ModulePath = bi.Main.Path
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	if v := settings["GOOS"]; v != "" {
		info.GOOS = v
	}
	if v := settings["GOARCH"]; v != "" {
		info.GOARCH = v
	}
	if v := settings["vcs.revision"]; v != "" {
		info.Commit = v
	}
	if v := settings["vcs.time"]; v != "" {
		info.CommitTime = v
	}
	if v, found := settings["vcs.modified"]; found {
		info.Modified = strings.EqualFold(v, "true")
	}

	return info
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
