// Package version reports the nmsearch build version.
package version

import "runtime/debug"

// version is set at build time with
// -ldflags "-X github.com/indaco/nmsearch/internal/version.version=1.2.3".
var version = ""

// GetVersion returns the build version, falling back to the module version
// recorded by `go install` and then to "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
