// Package webjar extracts the web assets of resource artifacts for the consuming application.
//
// In dev and test mode assets are reproduced below a cache directory on disk that is reused
// across runs for released versions. In production mode the assets are collected in memory
// for inclusion in the distributable bundle. In both modes protected files may be replaced by
// branding overrides, see package branding.
package webjar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogcontext "github.com/veqryn/slog-context"

	"ocm.software/open-component-model/webassets/artifact"
	"ocm.software/open-component-model/webassets/blob"
	"ocm.software/open-component-model/webassets/blob/filesystem"
	"ocm.software/open-component-model/webassets/branding"
	"ocm.software/open-component-model/webassets/cache"
)

// Extractor copies resource artifacts for a consuming application.
type Extractor struct {
	// Consumer is the consuming application. Its identity namespaces the cache.
	Consumer artifact.Identity
	Cache    *cache.Manager
	Resolver *branding.Resolver
}

// NewExtractor creates an extractor with the default cache manager.
func NewExtractor(consumer artifact.Identity, resolver *branding.Resolver) *Extractor {
	return &Extractor{
		Consumer: consumer,
		Cache:    cache.NewManager(),
		Resolver: resolver,
	}
}

// CopyResourcesForDevOrTest reproduces the content of rootFolder of the resource artifact in a
// cache directory and returns that directory.
//
// The directory is emptied first when not in dev mode or when the artifact is a snapshot.
// A non-empty directory is returned as is, so for released versions in dev mode the
// extraction happens at most once. Any I/O failure aborts the extraction and may leave
// the cache directory partially populated.
func (e *Extractor) CopyResourcesForDevOrTest(ctx context.Context, devMode bool, resources artifact.Artifact, rootFolder string) (string, error) {
	dir, err := e.copyResourcesForDevOrTest(ctx, devMode, resources, artifact.NormalizeRootFolder(rootFolder))
	if err != nil {
		return "", fmt.Errorf("failed to extract resources of %s from root folder %q: %w", resources.Identity, rootFolder, err)
	}
	return dir, nil
}

func (e *Extractor) copyResourcesForDevOrTest(ctx context.Context, devMode bool, resources artifact.Artifact, rootFolder string) (string, error) {
	logger := slogcontext.FromCtx(ctx).With(slog.String("realm", "webjar"), slog.String("artifact", resources.String()))

	dir, err := e.cacheManager().Resolve(e.Consumer, resources.Identity)
	if err != nil {
		return "", err
	}

	if cache.ShouldInvalidate(devMode, resources.Version) {
		logger.DebugContext(ctx, "invalidating cache directory", slog.String("dir", dir), slog.Bool("devMode", devMode))
		if err := cache.Reset(dir); err != nil {
			return "", err
		}
	}

	empty, err := cache.IsEmpty(dir)
	if err != nil {
		return "", err
	}
	if !empty {
		logger.DebugContext(ctx, "reusing cache directory", slog.String("dir", dir))
		return dir, nil
	}

	for _, root := range resources.Roots {
		err := root.Walk(ctx, rootFolder, func(entry artifact.Entry) error {
			return e.materialize(ctx, resources, dir, entry)
		})
		if errors.Is(err, artifact.ErrRootFolderNotFound) {
			logger.DebugContext(ctx, "content root does not contain root folder, skipping", slog.String("root", root.Path), slog.String("folder", rootFolder))
			continue
		}
		if err != nil {
			return "", fmt.Errorf("unable to copy content root %s: %w", root.Path, err)
		}
	}

	logger.InfoContext(ctx, "extracted resources", slog.String("dir", dir))
	return dir, nil
}

func (e *Extractor) materialize(ctx context.Context, resources artifact.Artifact, dir string, entry artifact.Entry) error {
	target := filepath.Join(dir, filepath.FromSlash(entry.Path))
	if entry.Dir {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("unable to create directory %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("unable to create directory %s: %w", filepath.Dir(target), err)
	}

	if override, ok := e.override(ctx, resources, entry.Path); ok {
		_, err := filesystem.WriteLocked(override, target)
		return err
	}

	// Files of expanded directories are copied directly, there is no archive stream to share.
	if entry.OSPath != "" {
		return copyFile(entry.OSPath, target)
	}
	_, err := filesystem.WriteLocked(entry.Blob, target)
	return err
}

// override returns the branding override for a protected file.
func (e *Extractor) override(ctx context.Context, resources artifact.Artifact, relativePath string) (blob.ReadOnlyBlob, bool) {
	if e.Resolver == nil || !e.Resolver.IsProtected(relativePath) {
		return nil, false
	}
	return e.Resolver.Resolve(ctx, relativePath, branding.ModuleKey(resources.Name, relativePath))
}

func (e *Extractor) cacheManager() *cache.Manager {
	if e.Cache == nil {
		return cache.NewManager()
	}
	return e.Cache
}

func copyFile(source, target string) (err error) {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", source, err)
	}
	defer func() {
		err = errors.Join(err, in.Close())
	}()
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", target, err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("unable to copy %s to %s: %w", source, target, err)
	}
	return nil
}
