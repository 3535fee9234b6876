// Package branding decides whether a protected web asset is replaced by a branding override.
//
// Overrides come from two tiers: the consuming application (user overrides found below
// BrandingFolder in any of its search paths) and the bundled branding namespace shipped with
// the tool. At each tier a module level override, keyed by the resource artifact name and the
// file extension, is preferred over an override for the file name itself.
package branding

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	slogcontext "github.com/veqryn/slog-context"

	"ocm.software/open-component-model/webassets/blob"
	"ocm.software/open-component-model/webassets/blob/filesystem"
	"ocm.software/open-component-model/webassets/blob/inmemory"
)

const (
	// BrandingFolder is the folder below a search path (or the bundled namespace) that holds overrides.
	BrandingFolder = "META-INF/branding/"

	styleSheetExtension = ".css"
)

// DefaultProtected lists the files eligible for override.
var DefaultProtected = []string{"logo.png", "favicon.ico", "style.css"}

// ModuleKey derives the module override key from the resource artifact name and the
// extension of the protected file, e.g. swagger-ui + style.css -> swagger-ui.css.
func ModuleKey(artifactName, relativePath string) string {
	return artifactName + path.Ext(relativePath)
}

// Resolver looks up branding overrides for protected files.
type Resolver struct {
	// SearchPaths are the roots of the consuming application searched for user overrides, in order.
	SearchPaths []string
	// Bundled is the bundled branding namespace.
	Bundled Lookup
	// Placeholders are substituted into overriding style sheets.
	Placeholders Placeholders
	// Protected lists the relative paths eligible for override.
	// If empty, DefaultProtected is used.
	Protected []string
}

// NewResolver creates a resolver protecting DefaultProtected.
func NewResolver(searchPaths []string, bundled Lookup, placeholders Placeholders) *Resolver {
	if bundled == nil {
		bundled = NoLookup
	}
	return &Resolver{
		SearchPaths:  searchPaths,
		Bundled:      bundled,
		Placeholders: placeholders,
		Protected:    slices.Clone(DefaultProtected),
	}
}

// IsProtected reports whether relativePath exactly matches an entry of the protected list.
func (r *Resolver) IsProtected(relativePath string) bool {
	protected := r.Protected
	if len(protected) == 0 {
		protected = DefaultProtected
	}
	return slices.Contains(protected, relativePath)
}

// Resolve returns the override content for relativePath, or false if the artifact's own
// content should be used.
//
// Existence is checked bundled first (module key, file name) and then user supplied
// (module key, file name). Retrieval however prefers the user supplied overrides:
//  1. user module key
//  2. user file name
//  3. bundled module key
//  4. bundled file name
//
// An override that exists but cannot be read is logged and the next candidate is tried.
// Style sheets have their placeholders substituted.
func (r *Resolver) Resolve(ctx context.Context, relativePath, moduleKey string) (blob.ReadOnlyBlob, bool) {
	logger := slogcontext.FromCtx(ctx).With(slog.String("realm", "branding"))

	if !r.HasOverride(relativePath, moduleKey) {
		return nil, false
	}

	content := r.userOverride(ctx, logger, relativePath, moduleKey)
	if content == nil {
		content = r.bundledOverride(ctx, logger, relativePath, moduleKey)
	}
	if content == nil {
		logger.WarnContext(ctx, "override announced but not readable, using original content",
			slog.String("path", relativePath), slog.String("module", moduleKey))
		return nil, false
	}

	if strings.HasSuffix(relativePath, styleSheetExtension) {
		data, err := blob.ReadAll(content)
		if err != nil {
			logger.WarnContext(ctx, "could not read override style sheet, using original content",
				slog.String("path", relativePath), slog.String("error", err.Error()))
			return nil, false
		}
		substituted := r.Placeholders.Substitute(string(data))
		return inmemory.NewFromBytes([]byte(substituted)), true
	}

	return content, true
}

// HasOverride reports whether any tier provides an override for the file.
func (r *Resolver) HasOverride(relativePath, moduleKey string) bool {
	return r.bundledExists(moduleKey) ||
		r.bundledExists(relativePath) ||
		r.userPath(moduleKey, relativePath) != ""
}

func (r *Resolver) bundled() Lookup {
	if r.Bundled == nil {
		return NoLookup
	}
	return r.Bundled
}

func (r *Resolver) bundledExists(key string) bool {
	return r.bundled().Exists(key)
}

// userPath returns the first existing user override, checking the module key and
// then the file name for every search path in order.
func (r *Resolver) userPath(moduleKey, relativePath string) string {
	for _, root := range r.SearchPaths {
		for _, key := range []string{moduleKey, relativePath} {
			candidate := filepath.Join(root, filepath.FromSlash(BrandingFolder), filepath.FromSlash(key))
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}

func (r *Resolver) userOverride(ctx context.Context, logger *slog.Logger, relativePath, moduleKey string) blob.ReadOnlyBlob {
	candidate := r.userPath(moduleKey, relativePath)
	if candidate == "" {
		return nil
	}
	content, err := load(func() (blob.ReadOnlyBlob, error) {
		return filesystem.GetBlobFromOSPath(candidate)
	})
	if err != nil {
		logger.WarnContext(ctx, "could not read override file", slog.String("file", candidate), slog.String("error", err.Error()))
		return nil
	}
	logger.DebugContext(ctx, "using user override", slog.String("path", relativePath), slog.String("file", candidate))
	return content
}

func (r *Resolver) bundledOverride(ctx context.Context, logger *slog.Logger, relativePath, moduleKey string) blob.ReadOnlyBlob {
	bundled := r.bundled()
	for _, key := range []string{moduleKey, relativePath} {
		if !bundled.Exists(key) {
			continue
		}
		content, err := load(func() (blob.ReadOnlyBlob, error) {
			return bundled.Open(key)
		})
		if err != nil {
			logger.WarnContext(ctx, "could not read bundled override", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		logger.DebugContext(ctx, "using bundled override", slog.String("path", relativePath), slog.String("key", key))
		return content
	}
	return nil
}

// load opens the override and buffers it, so read failures surface during resolution
// instead of while the target is being written.
func load(open func() (blob.ReadOnlyBlob, error)) (blob.ReadOnlyBlob, error) {
	b, err := open()
	if err != nil {
		return nil, err
	}
	data, err := blob.ReadAll(b)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return inmemory.NewFromBytes(data), nil
}
