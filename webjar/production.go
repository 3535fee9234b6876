package webjar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/opencontainers/go-digest"
	slogcontext "github.com/veqryn/slog-context"

	"ocm.software/open-component-model/webassets/artifact"
	"ocm.software/open-component-model/webassets/blob"
)

// ErrNotAnArchive is returned when a content root used for production is not a packed archive.
var ErrNotAnArchive = errors.New("production resources must be packed archives")

// Resources maps paths relative to the root folder to their content.
type Resources map[string][]byte

// Paths returns all resource paths in lexical order.
func (r Resources) Paths() []string {
	return slices.Sorted(maps.Keys(r))
}

// Digest returns the sha256 digest of the resource at path.
func (r Resources) Digest(path string) (digest.Digest, bool) {
	data, ok := r[path]
	if !ok {
		return "", false
	}
	return digest.FromBytes(data), true
}

// CopyResourcesForProduction collects the files below rootFolder of every archive content root
// of the resource artifact, applying branding overrides to protected files. Nothing is
// written to disk. If several content roots provide the same path the later one wins.
func (e *Extractor) CopyResourcesForProduction(ctx context.Context, resources artifact.Artifact, rootFolder string) (Resources, error) {
	collected, err := e.copyResourcesForProduction(ctx, resources, artifact.NormalizeRootFolder(rootFolder))
	if err != nil {
		return nil, fmt.Errorf("failed to collect resources of %s from root folder %q: %w", resources.Identity, rootFolder, err)
	}
	return collected, nil
}

func (e *Extractor) copyResourcesForProduction(ctx context.Context, resources artifact.Artifact, rootFolder string) (Resources, error) {
	logger := slogcontext.FromCtx(ctx).With(slog.String("realm", "webjar"), slog.String("artifact", resources.String()))

	collected := Resources{}
	for _, root := range resources.Roots {
		err := root.WalkArchive(ctx, rootFolder, func(entry artifact.Entry) error {
			if entry.Dir {
				return nil
			}
			content := entry.Blob
			if override, ok := e.override(ctx, resources, entry.Path); ok {
				content = override
			}
			data, err := blob.ReadAll(content)
			if err != nil {
				return fmt.Errorf("unable to read %s: %w", entry.Name, err)
			}
			collected[entry.Path] = data
			return nil
		})
		if errors.Is(err, artifact.ErrUnsupportedFormat) {
			return nil, fmt.Errorf("content root %s: %w", root.Path, errors.Join(ErrNotAnArchive, err))
		}
		if err != nil {
			return nil, fmt.Errorf("unable to collect content root %s: %w", root.Path, err)
		}
	}

	logger.DebugContext(ctx, "collected resources", slog.Int("count", len(collected)))
	return collected, nil
}
