// Package artifact describes versioned resource artifacts and the content roots they ship in.
//
// A content root is either a packed archive (jar, zip, tar, tgz, tar.zst) or an already
// expanded directory. Both are enumerated through ContentRoot.Walk so that extraction can
// be implemented once for both representations.
package artifact

import (
	"fmt"
	"strings"
)

// Identity identifies a versioned artifact. Two identities are equal only if group,
// name and version all match; the version is part of the identity and not a constraint.
type Identity struct {
	Group   string `json:"group"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (i Identity) String() string {
	return i.Group + ":" + i.Name + ":" + i.Version
}

// Coordinates returns group:name without the version.
func (i Identity) Coordinates() string {
	return i.Group + ":" + i.Name
}

func (i Identity) Equal(o Identity) bool {
	return i == o
}

// Validate checks that every field can be used as a single path segment.
func (i Identity) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"group", i.Group},
		{"name", i.Name},
		{"version", i.Version},
	} {
		switch {
		case field.value == "":
			return fmt.Errorf("artifact %s: %s must not be empty", i, field.name)
		case field.value == "." || field.value == "..":
			return fmt.Errorf("artifact %s: %s %q is not a valid path segment", i, field.name, field.value)
		case strings.ContainsAny(field.value, `/\`):
			return fmt.Errorf("artifact %s: %s %q must not contain path separators", i, field.name, field.value)
		}
	}
	return nil
}

// ParseCoordinates parses group:name or group:name:version.
func ParseCoordinates(s string) (Identity, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		return Identity{Group: parts[0], Name: parts[1]}, nil
	case 3:
		return Identity{Group: parts[0], Name: parts[1], Version: parts[2]}, nil
	default:
		return Identity{}, fmt.Errorf("invalid artifact coordinates %q, expected group:name[:version]", s)
	}
}

// Artifact is a resolved artifact together with the content roots it is made of.
// Content roots are processed in the order given.
type Artifact struct {
	Identity
	Roots []ContentRoot
}
