package artifact

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SnapshotQualifier marks mutable development builds.
const SnapshotQualifier = "-SNAPSHOT"

// preReleaseQualifiers name pre-release builds. They match a qualifier case-insensitively,
// optionally followed by a number (RC1, M2, beta.3).
var preReleaseQualifiers = map[string]struct{}{
	"alpha":     {},
	"beta":      {},
	"rc":        {},
	"cr":        {},
	"m":         {},
	"milestone": {},
	"preview":   {},
	"snapshot":  {},
}

// IsSnapshot reports whether the version denotes a build that may change between runs.
// This is the case for versions carrying the snapshot qualifier and for versions whose
// qualifier names a pre-release (alpha, beta, rc, milestone). Numeric build suffixes
// (3.25.0-1) and classifiers (31.1-jre) denote releases.
func IsSnapshot(version string) bool {
	if strings.Contains(strings.ToUpper(version), SnapshotQualifier) {
		return true
	}
	var qualifier string
	if v, err := semver.NewVersion(version); err == nil {
		qualifier = v.Prerelease()
	} else if _, rest, found := strings.Cut(version, "-"); found {
		qualifier = rest
	}
	for _, identifier := range strings.FieldsFunc(qualifier, func(r rune) bool { return r == '.' || r == '-' }) {
		name := strings.TrimRight(strings.ToLower(identifier), "0123456789")
		if _, ok := preReleaseQualifiers[name]; ok {
			return true
		}
	}
	return false
}
