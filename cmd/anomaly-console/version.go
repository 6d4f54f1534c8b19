// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anomaly-console/internal/report"
)

// versionInfo describes the running binary.
type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Revision  string `json:"revision,omitempty" yaml:"revision,omitempty"`
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// currentVersion combines the ldflags version with the VCS stamp the Go
// toolchain embeds, when there is one.
func currentVersion() versionInfo {
	v := versionInfo{Version: version, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				v.Revision = s.Value
			case "vcs.modified":
				v.Modified = s.Value == "true"
			}
		}
	}
	return v
}

func (v versionInfo) String() string {
	s := fmt.Sprintf("anomaly-console %s (%s", v.Version, v.GoVersion)
	if v.Revision != "" {
		rev := v.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		s += ", " + rev
		if v.Modified {
			s += "+dirty"
		}
	}
	return s + ")"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the anomaly-console build version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		v := currentVersion()
		if f == report.Table {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		}
		return report.Render(cmd.OutOrStdout(), f, v)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
