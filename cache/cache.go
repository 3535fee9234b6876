// Package cache manages the on-disk directories web assets are extracted into.
//
// A cache directory is namespaced by the consuming application and the resource artifact,
// including its version:
//
//	<temp-root>/<namespace>/<consumer.group>/<consumer.name>/<resource.group>/<resource.name>/<resource.version>
//
// Stale directories are never evicted.
package cache

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"ocm.software/open-component-model/webassets/artifact"
)

// DefaultNamespace is the folder below the temporary root all cache directories live in.
const DefaultNamespace = "webassets"

// Manager computes and maintains cache directories.
type Manager struct {
	// TempRoot is the root of all cache directories, os.TempDir() if empty.
	TempRoot string
	// Namespace separates the cache from other users of TempRoot, DefaultNamespace if empty.
	Namespace string
}

// NewManager creates a Manager with the default temporary root and namespace.
func NewManager() *Manager {
	return &Manager{}
}

// Path returns the cache directory for the pair without touching the filesystem.
func (m *Manager) Path(consumer, resource artifact.Identity) (string, error) {
	if err := consumer.Validate(); err != nil {
		return "", fmt.Errorf("invalid consumer: %w", err)
	}
	if err := resource.Validate(); err != nil {
		return "", fmt.Errorf("invalid resource artifact: %w", err)
	}
	root := m.TempRoot
	if root == "" {
		root = os.TempDir()
	}
	namespace := m.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return filepath.Join(root, namespace,
		consumer.Group, consumer.Name,
		resource.Group, resource.Name, resource.Version,
	), nil
}

// Resolve returns the cache directory for the pair and creates it if it does not exist.
func (m *Manager) Resolve(consumer, resource artifact.Identity) (string, error) {
	dir, err := m.Path(consumer, resource)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create cache directory %s: %w", dir, err)
	}
	return dir, nil
}

// ShouldInvalidate reports whether a cache directory has to be emptied before use.
// Outside of dev mode the cache is never trusted; in dev mode only snapshot versions
// are considered mutable.
func ShouldInvalidate(devMode bool, version string) bool {
	return !devMode || artifact.IsSnapshot(version)
}

// Reset empties dir and recreates it.
func Reset(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("unable to empty cache directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to recreate cache directory %s: %w", dir, err)
	}
	return nil
}

// IsEmpty reports whether dir needs extraction, which is the case if it does not
// exist or has no entries.
func IsEmpty(dir string) (_ bool, err error) {
	d, err := os.Open(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("unable to open cache directory %s: %w", dir, err)
	}
	defer func() {
		err = errors.Join(err, d.Close())
	}()

	if _, err = d.Readdirnames(1); errors.Is(err, io.EOF) {
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("unable to list cache directory %s: %w", dir, err)
	}
	return false, nil
}
