package cmd

import (
	"fmt"
	"runtime"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/bodrovis/taxjar/client"
)

// Set with -ldflags "-X github.com/bodrovis/taxjar/internal/cmd.gitCommit=...".
var (
	gitCommit = "unknown"
	buildDate = "unknown"
)

type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{
				Version:   client.Version,
				GitCommit: gitCommit,
				BuildDate: buildDate,
				GoVersion: runtime.Version(),
				Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
			}
			return a.printer.Print(info, func(t *uitable.Table) {
				t.RightAlign(0)
				t.Separator = " "
				t.AddRow("version:", info.Version)
				t.AddRow("gitCommit:", info.GitCommit)
				t.AddRow("buildDate:", info.BuildDate)
				t.AddRow("goVersion:", info.GoVersion)
				t.AddRow("platform:", info.Platform)
			})
		},
	}
}
