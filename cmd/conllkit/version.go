package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build metadata, overridable via -ldflags.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show conllkit build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := versionPayload{
			Tool:      "conllkit",
			Version:   Version,
			GoVersion: runtime.Version(),
			GitCommit: GitCommit,
			BuildDate: BuildDate,
		}
		out := cmd.OutOrStdout()

		switch versionFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		case "pretty", "":
			fmt.Fprintf(out, "%s %s (%s)\n", color.New(color.Bold).Sprint(p.Tool), p.Version, p.GoVersion)
			if p.GitCommit != "" {
				fmt.Fprintf(out, "commit: %s\n", p.GitCommit)
			}
			if p.BuildDate != "" {
				fmt.Fprintf(out, "built:  %s\n", p.BuildDate)
			}
			return nil
		default:
			return fmt.Errorf("unknown format %q", versionFormat)
		}
	},
}
