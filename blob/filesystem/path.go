package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
)

// EnsurePathInWorkingDirectory resolves path relative to workingDirectory and
// returns the absolute result. An error is returned if the resolved path escapes
// the working directory.
func EnsurePathInWorkingDirectory(path, workingDirectory string) (string, error) {
	return ensurePathInWorkingDirectory(path, workingDirectory)
}

func ensurePathInWorkingDirectory(path, workingDirectory string) (string, error) {
	base, err := filepath.Abs(workingDirectory)
	if err != nil {
		return "", fmt.Errorf("unable to get absolute path of working directory %q: %w", workingDirectory, err)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", fmt.Errorf("unable to relate %q to working directory %q: %w", path, base, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is not within working directory %q", path, base)
	}

	return path, nil
}
