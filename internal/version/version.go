// Package version reports the build identity of the aerobridge binary.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Set at build time via ldflags, e.g.
// -X github.com/example/aerobridge/internal/version.Version=0.3.1
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Release parses Version. It returns nil for development builds or an
// unparseable value.
func Release() *semver.Version {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	return v
}

// String returns "aerobridge v1.2.3 (commit: abc1234, built: ...)", or
// "aerobridge dev (...)" when no release version was stamped.
func String() string {
	label := "dev"
	if v := Release(); v != nil {
		label = "v" + v.String()
	}
	return fmt.Sprintf("aerobridge %s (commit: %s, built: %s)", label, shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
