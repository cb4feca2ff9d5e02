package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the inlinable CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with major, minor and patch in their own colours.
// A version that is not dotted is returned unchanged.
func Colored(enabled bool) string {
	parts := strings.SplitN(Version, ".", 3)
	if !enabled || len(parts) != 3 {
		return Version
	}
	for _, c := range []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor} {
		c.EnableColor()
	}
	patch, suffix, _ := strings.Cut(parts[2], "-")
	if suffix != "" {
		suffix = "-" + suffix
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(patch) + suffix
}

// Banner is the line printed by `inlinable version`.
func Banner(enabled bool) string {
	s := "inlinable " + Colored(enabled)
	var extra []string
	if GitCommit != "" {
		extra = append(extra, "commit "+GitCommit)
	}
	if BuildDate != "" {
		extra = append(extra, "built "+BuildDate)
	}
	if len(extra) > 0 {
		s = fmt.Sprintf("%s (%s)", s, strings.Join(extra, ", "))
	}
	return s
}
