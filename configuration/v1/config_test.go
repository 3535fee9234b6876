package v1_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ocm.software/open-component-model/webassets/artifact"
	"ocm.software/open-component-model/webassets/blob"
	"ocm.software/open-component-model/webassets/cache"
	v1 "ocm.software/open-component-model/webassets/configuration/v1"
)

func TestLoadFile(t *testing.T) {
	r := require.New(t)

	cfg, err := v1.LoadFile(filepath.Join("testdata", "webassets.yaml"))
	r.NoError(err)

	base, err := filepath.Abs("testdata")
	r.NoError(err)

	r.Equal(v1.ConfigType, cfg.Type)
	r.True(cfg.DevMode)
	r.Equal(artifact.Identity{Group: "com.acme", Name: "shop", Version: "1.0.0"}, cfg.Consumer())
	r.Equal([]string{filepath.Join(base, "app", "resources")}, cfg.Application.Paths)
	r.Equal(&cache.Manager{TempRoot: filepath.Join(base, "cache"), Namespace: "webassets-test"}, cfg.CacheManager())

	deps := cfg.DependencySet()
	r.Len(deps, 2)
	swagger, err := deps.Find("org.webjars", "swagger-ui")
	r.NoError(err)
	r.Equal("3.25.0", swagger.Version)
	r.Equal([]artifact.ContentRoot{{Path: filepath.Join(base, "lib", "swagger-ui-3.25.0.jar")}}, swagger.Roots)

	devUI, err := deps.Find("io.quarkus", "quarkus-dev-ui")
	r.NoError(err)
	r.Equal([]artifact.ContentRoot{{Path: "/opt/dev-ui/classes"}}, devUI.Roots, "absolute paths are kept")
}

func TestConfig_Resolver(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	cfg, err := v1.LoadFile(filepath.Join("testdata", "webassets.yaml"))
	r.NoError(err)

	resolver, err := cfg.Resolver("9.9.9")
	r.NoError(err)
	r.True(resolver.IsProtected("style.css"))
	r.False(resolver.IsProtected("favicon.ico"))

	override, ok := resolver.Resolve(ctx, "style.css", "swagger-ui.css")
	r.True(ok)
	data, err := blob.ReadAll(override)
	r.NoError(err)
	r.Equal("shop 2.0", string(data), "the configured tool version wins over the build version")

	cfg.ToolVersion = ""
	resolver, err = cfg.Resolver("9.9.9")
	r.NoError(err)
	override, ok = resolver.Resolve(ctx, "style.css", "swagger-ui.css")
	r.True(ok)
	data, err = blob.ReadAll(override)
	r.NoError(err)
	r.Equal("shop 9.9.9", string(data))
}

func TestConfig_ResolverMissingBundle(t *testing.T) {
	r := require.New(t)
	cfg := &v1.Config{
		Type:        v1.ConfigType,
		Application: v1.Artifact{Group: "com.acme", Name: "shop", Version: "1.0.0"},
		Branding:    &v1.Branding{Bundle: filepath.Join(t.TempDir(), "missing.tar")},
	}
	_, err := cfg.Resolver("")
	r.Error(err)
}

func TestConfig_Defaults(t *testing.T) {
	r := require.New(t)
	cfg, err := v1.Load([]byte(`
type: webassets.config.ocm.software/v1
application: {group: com.acme, name: shop, version: "1.0.0"}
`))
	r.NoError(err)
	r.False(cfg.DevMode)
	r.Equal(cache.NewManager(), cfg.CacheManager())
	r.Empty(cfg.DependencySet())

	resolver, err := cfg.Resolver("2.0")
	r.NoError(err)
	r.True(resolver.IsProtected("favicon.ico"))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name:   "not yaml",
			config: "type: [",
		},
		{
			name:   "wrong type",
			config: `{type: generic.config.ocm.software/v1, application: {group: a, name: b, version: "1"}}`,
		},
		{
			name:   "missing application",
			config: `{type: webassets.config.ocm.software/v1}`,
		},
		{
			name:   "missing version",
			config: `{type: webassets.config.ocm.software/v1, application: {group: a, name: b}}`,
		},
		{
			name:   "numeric version",
			config: `{type: webassets.config.ocm.software/v1, application: {group: a, name: b, version: 1.0}}`,
		},
		{
			name:   "path separator in name",
			config: `{type: webassets.config.ocm.software/v1, application: {group: a, name: b/c, version: "1"}}`,
		},
		{
			name:   "parent reference as group",
			config: `{type: webassets.config.ocm.software/v1, application: {group: "..", name: b, version: "1"}}`,
		},
		{
			name:   "unknown field",
			config: `{type: webassets.config.ocm.software/v1, application: {group: a, name: b, version: "1"}, mode: dev}`,
		},
		{
			name:   "namespace with separator",
			config: `{type: webassets.config.ocm.software/v1, application: {group: a, name: b, version: "1"}, cache: {namespace: a/b}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v1.Load([]byte(tt.config))
			require.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	r := require.New(t)
	cfg := &v1.Config{
		Type:        v1.ConfigType,
		Application: v1.Artifact{Group: "com.acme", Name: "shop", Version: "1.0.0"},
		Dependencies: []v1.Artifact{
			{Group: "org.webjars", Name: "swagger-ui", Version: "3.25.0", Paths: []string{"swagger.jar"}},
		},
	}
	r.NoError(v1.Validate(cfg))

	cfg.Dependencies[0].Version = ""
	r.Error(v1.Validate(cfg))
}

func TestSchema(t *testing.T) {
	r := require.New(t)
	r.Contains(string(v1.Schema()), v1.ConfigType)
}
