package webjar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ocm.software/open-component-model/webassets/webjar"
)

const openAPIConfig = `const ui = SwaggerUIBundle({
  url: /old/path
  dom_id: '#swagger-ui',
})
`

func TestUpdateURL(t *testing.T) {
	r := require.New(t)

	updated := webjar.UpdateURL(openAPIConfig, "/new/path", "url:", "url: %s")
	r.Equal(`const ui = SwaggerUIBundle({
  url: /new/path
  dom_id: '#swagger-ui',
})
`, updated)

	r.Equal(updated, webjar.UpdateURL(updated, "/new/path", "url:", "url: %s"), "updating to the same path is a no-op")
}

func TestUpdateURL_OnlyFirstMatchingLine(t *testing.T) {
	r := require.New(t)
	content := "url: /a\r\n\turl: /a\r\n"

	r.Equal("url: /b\r\n\turl: /a\r\n", webjar.UpdateURL(content, "/b", "url:", "url: %s"))
}

func TestUpdateURL_NoMatch(t *testing.T) {
	r := require.New(t)
	r.Equal(openAPIConfig, webjar.UpdateURL(openAPIConfig, "/new/path", "href:", "href: %s"))
	r.Equal("", webjar.UpdateURL("", "/new/path", "url:", "url: %s"))
}

func TestUpdateURLInFile(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "index.html")
	r.NoError(os.WriteFile(path, []byte(openAPIConfig), 0o600))

	r.NoError(webjar.UpdateURLInFile(path, "/q/openapi", "url:", "url: %s"))
	data, err := os.ReadFile(path)
	r.NoError(err)
	r.Contains(string(data), "  url: /q/openapi\n")

	fi, err := os.Stat(path)
	r.NoError(err)
	r.Equal(os.FileMode(0o600), fi.Mode().Perm())

	r.Error(webjar.UpdateURLInFile(filepath.Join(t.TempDir(), "missing"), "/x", "url:", "url: %s"))
}

func TestUpdateFile(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "index.html")
	r.NoError(os.WriteFile(path, []byte("a much longer original content"), 0o644))

	r.NoError(webjar.UpdateFile(path, []byte("new")))
	data, err := os.ReadFile(path)
	r.NoError(err)
	r.Equal("new", string(data))
}
