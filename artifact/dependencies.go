package artifact

import (
	"errors"
	"fmt"

	"github.com/gobwas/glob"
)

// ErrDependencyNotFound is returned if a dependency is not part of the dependency set.
var ErrDependencyNotFound = errors.New("dependency not found")

// Dependencies is the set of build time dependencies of the consuming application.
type Dependencies []Artifact

// Find returns the first dependency with the given group and name.
func (d Dependencies) Find(group, name string) (Artifact, error) {
	for _, dep := range d {
		if dep.Group == group && dep.Name == name {
			return dep, nil
		}
	}
	return Artifact{}, fmt.Errorf("could not find artifact %s:%s among the application dependencies: %w", group, name, ErrDependencyNotFound)
}

// Match returns all dependencies whose group:name matches the glob pattern, in declaration order.
// A pattern that matches nothing results in ErrDependencyNotFound.
func (d Dependencies) Match(pattern string) (Dependencies, error) {
	g, err := glob.Compile(pattern, ':')
	if err != nil {
		return nil, fmt.Errorf("failed to compile artifact pattern %q: %w", pattern, err)
	}
	var matched Dependencies
	for _, dep := range d {
		if g.Match(dep.Coordinates()) {
			matched = append(matched, dep)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no artifact matching %q among the application dependencies: %w", pattern, ErrDependencyNotFound)
	}
	return matched, nil
}
