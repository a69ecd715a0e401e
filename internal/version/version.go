// Package version holds the build fingerprint stamped into the gaia
// binary. Release builds override the variables with -ldflags.
package version

import "github.com/fatih/color"

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the CLI's semantic version.
	Version = majorColor.Sprint("0") + "." + minorColor.Sprint("1") + "." + patchColor.Sprint("0") + "-dev"

	// GitCommit is the hash of the commit the binary was built from,
	// when the build recorded one.
	GitCommit = ""

	// BuildDate is the build timestamp in ISO-8601, when recorded.
	BuildDate = ""
)
