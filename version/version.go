package version // import "github.com/openleaf/openleaf/version"

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the semver of the current build.
// The schema version used by the migrator is the major.minor part.
var Version = "0.2.1"

func GetCurrentVersion() string {
	return Version
}

// GetSchemaVersion returns the version used to key schema migrations,
// which is the minor version with a trailing ".0".
func GetSchemaVersion(version string) string {
	return GetMinorVersion(version) + ".0"
}

func GetMinorVersion(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return version
	}
	return strings.Join(parts[:2], ".")
}

func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare("v"+version, "v"+target) > 0
}

func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare("v"+version, "v"+target) >= 0
}

// SortVersion sorts a list of versions in ascending semver order.
func SortVersion(versions []string) []string {
	sort.Slice(versions, func(i, j int) bool {
		return semver.Compare("v"+versions[i], "v"+versions[j]) < 0
	})
	return versions
}
