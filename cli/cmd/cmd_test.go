package cmd_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ocm.software/open-component-model/webassets/cli/cmd"
	"ocm.software/open-component-model/webassets/cli/cmd/collect"
	"ocm.software/open-component-model/webassets/internal/testutil"
)

type env struct {
	config string
	cache  string
	dir    string
}

// setup writes an application with two webjar dependencies and a user style sheet override.
func setup(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteZip(t, filepath.Join(dir, "lib", "swagger-ui-3.25.0.jar"),
		testutil.File{Name: "META-INF/resources/index.html", Content: "url: /old/path"},
		testutil.File{Name: "META-INF/resources/style.css", Content: "original"},
	)
	testutil.WriteTar(t, filepath.Join(dir, "lib", "redoc-2.0.0.tgz"),
		testutil.File{Name: "META-INF/resources/redoc.js", Content: "redoc"},
	)
	testutil.WriteDir(t, filepath.Join(dir, "app"),
		testutil.File{Name: "META-INF/branding/style.css", Content: "{applicationName} {applicationVersion}"},
	)
	config := filepath.Join(dir, "webassets.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`type: webassets.config.ocm.software/v1
application:
  group: com.acme
  name: shop
  version: "1.0.0"
  paths: [app]
dependencies:
  - {group: org.webjars, name: swagger-ui, version: "3.25.0", paths: [lib/swagger-ui-3.25.0.jar]}
  - {group: org.webjars, name: redoc, version: "2.0.0", paths: [lib/redoc-2.0.0.tgz]}
  - {group: io.other, name: tool, version: "1.0.0", paths: [missing]}
`), 0o644))
	return env{config: config, cache: filepath.Join(dir, "cache"), dir: dir}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cmd.New()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestExtract(t *testing.T) {
	r := require.New(t)
	e := setup(t)

	out, err := run(t, "--config", e.config, "--temp-folder", e.cache,
		"extract", "--artifact", "org.webjars:swagger-ui", "--artifact", "org.webjars:redoc:2.0.0", "--artifact", "org.webjars:swagger-ui")
	r.NoError(err)

	swaggerDir := filepath.Join(e.cache, "webassets", "com.acme", "shop", "org.webjars", "swagger-ui", "3.25.0")
	redocDir := filepath.Join(e.cache, "webassets", "com.acme", "shop", "org.webjars", "redoc", "2.0.0")
	r.Equal(fmt.Sprintf("org.webjars:swagger-ui:3.25.0 -> %s\norg.webjars:redoc:2.0.0 -> %s\n", swaggerDir, redocDir), out)

	r.Equal(map[string]string{
		"index.html": "url: /old/path",
		"style.css":  "shop 1.0.0",
	}, testutil.ReadTree(t, swaggerDir))
	r.Equal(map[string]string{"redoc.js": "redoc"}, testutil.ReadTree(t, redocDir))
}

func TestExtract_Errors(t *testing.T) {
	e := setup(t)
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{
			name:     "unknown artifact",
			args:     []string{"extract", "--artifact", "org.webjars:unknown"},
			contains: "org.webjars:unknown",
		},
		{
			name:     "version mismatch",
			args:     []string{"extract", "--artifact", "org.webjars:redoc:3.0.0"},
			contains: "declared with version 2.0.0",
		},
		{
			name:     "invalid coordinates",
			args:     []string{"extract", "--artifact", "redoc"},
			contains: "group:name",
		},
		{
			name:     "invalid parallelism",
			args:     []string{"extract", "--artifact", "org.webjars:redoc", "--parallel", "0"},
			contains: "--parallel",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"--config", e.config, "--temp-folder", e.cache}, tt.args...)...)
			require.ErrorContains(t, err, tt.contains)
		})
	}
}

func TestExtract_MissingConfiguration(t *testing.T) {
	r := require.New(t)

	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "extract", "--artifact", "org.webjars:redoc")
	r.ErrorContains(err, "does not exist")
}

func TestCollect(t *testing.T) {
	r := require.New(t)
	e := setup(t)
	outputDir := filepath.Join(e.dir, "dist")

	out, err := run(t, "--config", e.config, "collect", "--artifact", "org.webjars:*", "-o", "json", "--output-dir", outputDir)
	r.NoError(err)

	var list []collect.Resource
	r.NoError(json.Unmarshal([]byte(out), &list))
	r.Len(list, 3)
	r.Equal("org.webjars:swagger-ui:3.25.0", list[0].Artifact)
	r.Equal("index.html", list[0].Path)
	r.Equal("style.css", list[1].Path)
	r.Equal(len("shop 1.0.0"), list[1].Size)
	r.True(strings.HasPrefix(list[1].Digest, "sha256:"))
	r.Equal("org.webjars:redoc:2.0.0", list[2].Artifact)

	r.Equal(map[string]string{
		"swagger-ui/index.html": "url: /old/path",
		"swagger-ui/style.css":  "shop 1.0.0",
		"redoc/redoc.js":        "redoc",
	}, testutil.ReadTree(t, outputDir))
	r.NoDirExists(e.cache, "production collection does not touch the cache")
}

func TestCollect_Formats(t *testing.T) {
	r := require.New(t)
	e := setup(t)

	out, err := run(t, "--config", e.config, "collect", "--artifact", "org.webjars:redoc")
	r.NoError(err)
	r.Contains(out, "ARTIFACT")
	r.Contains(out, "redoc.js")

	out, err = run(t, "--config", e.config, "collect", "--artifact", "org.webjars:redoc", "-o", "yaml")
	r.NoError(err)
	var list []collect.Resource
	r.NoError(yaml.Unmarshal([]byte(out), &list))
	r.Equal([]collect.Resource{{Artifact: "org.webjars:redoc:2.0.0", Path: "redoc.js", Size: 5, Digest: list[0].Digest}}, list)

	_, err = run(t, "--config", e.config, "collect", "--artifact", "com.unknown:*")
	r.ErrorContains(err, "com.unknown:*")
}

func TestUpdateURL(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "swagger-initializer.js")
	r.NoError(os.WriteFile(path, []byte("window.ui = SwaggerUIBundle({\n    url: \"https://petstore.swagger.io/v2/swagger.json\",\n})\n"), 0o644))

	_, err := run(t, "update-url", path, "--path", "/q/openapi", "--format", "url: \"%s\",")
	r.NoError(err)

	data, err := os.ReadFile(path)
	r.NoError(err)
	r.Equal("window.ui = SwaggerUIBundle({\n    url: \"/q/openapi\",\n})\n", string(data))
}

func TestUpdateURL_DryRun(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "index.html")
	original := "<script>\n  url: '/old/path',\n</script>\n"
	r.NoError(os.WriteFile(path, []byte(original), 0o644))

	out, err := run(t, "update-url", path, "--path", "/new/path", "--dry-run")
	r.NoError(err)
	r.Contains(out, "-  url: '/old/path',\n")
	r.Contains(out, "+  url: '/new/path',\n")

	data, err := os.ReadFile(path)
	r.NoError(err)
	r.Equal(original, string(data), "a dry run does not write")

	out, err = run(t, "update-url", path, "--path", "/old/path", "--dry-run")
	r.NoError(err)
	r.Empty(out, "no diff without change")
}

func TestVersion(t *testing.T) {
	r := require.New(t)

	out, err := run(t, "version")
	r.NoError(err)
	r.NotEmpty(strings.TrimSpace(out))

	out, err = run(t, "version", "-f", "json")
	r.NoError(err)
	var info map[string]any
	r.NoError(json.Unmarshal([]byte(out), &info))
	r.Contains(info, "goVersion")
}

func TestGenerateDocs(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()

	_, err := run(t, "generate", "docs", "--directory", dir)
	r.NoError(err)
	r.FileExists(filepath.Join(dir, "webassets.md"))
	r.FileExists(filepath.Join(dir, "webassets_extract.md"))
}
