// Package v1 contains the webassets configuration document.
//
// A configuration describes the consuming application, its build-time dependency set and
// how extraction behaves (dev mode, cache location, branding). It is read from YAML or JSON
// and validated against the embedded JSON schema.
package v1

import (
	"path/filepath"

	"ocm.software/open-component-model/webassets/artifact"
	"ocm.software/open-component-model/webassets/branding"
	"ocm.software/open-component-model/webassets/cache"
)

// ConfigType is the only accepted value of Config.Type.
const ConfigType = "webassets.config.ocm.software/v1"

// Config is the webassets configuration document.
type Config struct {
	Type         string     `json:"type"`
	Application  Artifact   `json:"application"`
	ToolVersion  string     `json:"toolVersion,omitempty"`
	DevMode      bool       `json:"devMode,omitempty"`
	Cache        *Cache     `json:"cache,omitempty"`
	Branding     *Branding  `json:"branding,omitempty"`
	Dependencies []Artifact `json:"dependencies,omitempty"`
}

// Artifact declares an artifact by coordinates together with its content roots.
type Artifact struct {
	Group   string   `json:"group"`
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Paths   []string `json:"paths,omitempty"`
}

type Cache struct {
	TempRoot  string `json:"tempRoot,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

type Branding struct {
	// Bundle is a directory or a (gzip compressed) tar archive holding
	// the bundled overrides below branding.BrandingFolder.
	Bundle    string   `json:"bundle,omitempty"`
	Protected []string `json:"protected,omitempty"`
}

// Identity returns the coordinates of the artifact.
func (a Artifact) Identity() artifact.Identity {
	return artifact.Identity{Group: a.Group, Name: a.Name, Version: a.Version}
}

// Artifact returns the artifact with its content roots.
func (a Artifact) Artifact() artifact.Artifact {
	roots := make([]artifact.ContentRoot, 0, len(a.Paths))
	for _, p := range a.Paths {
		roots = append(roots, artifact.ContentRoot{Path: p})
	}
	return artifact.Artifact{Identity: a.Identity(), Roots: roots}
}

// Consumer returns the identity of the consuming application.
func (c *Config) Consumer() artifact.Identity {
	return c.Application.Identity()
}

// DependencySet returns the declared dependencies in declaration order.
func (c *Config) DependencySet() artifact.Dependencies {
	deps := make(artifact.Dependencies, 0, len(c.Dependencies))
	for _, d := range c.Dependencies {
		deps = append(deps, d.Artifact())
	}
	return deps
}

// CacheManager returns the cache manager described by the configuration.
func (c *Config) CacheManager() *cache.Manager {
	if c.Cache == nil {
		return cache.NewManager()
	}
	return &cache.Manager{TempRoot: c.Cache.TempRoot, Namespace: c.Cache.Namespace}
}

// Resolver creates the branding resolver for the application. The user overrides are
// searched in the application paths. toolVersion is used if the configuration does not
// set one.
func (c *Config) Resolver(toolVersion string) (*branding.Resolver, error) {
	if c.ToolVersion != "" {
		toolVersion = c.ToolVersion
	}
	var bundled branding.Lookup = branding.NoLookup
	var protected []string
	if c.Branding != nil {
		protected = c.Branding.Protected
		if c.Branding.Bundle != "" {
			lookup, err := bundleLookup(c.Branding.Bundle)
			if err != nil {
				return nil, err
			}
			bundled = lookup
		}
	}

	resolver := branding.NewResolver(c.Application.Paths, bundled, branding.Placeholders{
		ApplicationName:    c.Application.Name,
		ApplicationVersion: c.Application.Version,
		ToolVersion:        toolVersion,
	})
	if len(protected) > 0 {
		resolver.Protected = protected
	}
	return resolver, nil
}

// resolvePaths makes all relative paths of the configuration relative to base.
func (c *Config) resolvePaths(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	absAll := func(paths []string) {
		for i := range paths {
			paths[i] = abs(paths[i])
		}
	}

	absAll(c.Application.Paths)
	for i := range c.Dependencies {
		absAll(c.Dependencies[i].Paths)
	}
	if c.Cache != nil {
		c.Cache.TempRoot = abs(c.Cache.TempRoot)
	}
	if c.Branding != nil {
		c.Branding.Bundle = abs(c.Branding.Bundle)
	}
}
