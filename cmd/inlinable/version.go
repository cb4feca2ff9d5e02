package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inlinable/internal/printer"
	"inlinable/internal/query"
	"inlinable/internal/version"
)

type versionPayload struct {
	Tool          string   `json:"tool"`
	Version       string   `json:"version"`
	GitCommit     string   `json:"git_commit,omitempty"`
	BuildDate     string   `json:"build_date,omitempty"`
	FormatVersion int      `json:"interface_format_version"`
	Requests      []string `json:"requests"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "pretty":
			colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
			if err != nil {
				return fmt.Errorf("failed to get color flag: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Banner(resolveColor(colorFlag, os.Stdout)))
			return nil
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(buildVersionPayload())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func buildVersionPayload() versionPayload {
	kinds := query.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return versionPayload{
		Tool:          "inlinable",
		Version:       version.Version,
		GitCommit:     version.GitCommit,
		BuildDate:     version.BuildDate,
		FormatVersion: printer.FormatVersion,
		Requests:      names,
	}
}
