package version

import "strings"

// Version is overridden at build time via -ldflags "-X".
var Version = "dev"

// Label returns Version for display: "dev" as is, releases with a "v" prefix.
func Label() string {
	if Version == "" || Version == "dev" || strings.HasPrefix(Version, "v") {
		return Version
	}
	return "v" + Version
}
