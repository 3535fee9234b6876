// Package testutil builds content roots for tests.
package testutil

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

// File is an archive entry. Names ending with a slash are directories.
type File struct {
	Name    string
	Content string
}

// WriteZip writes the files, in order, into a zip archive at path.
func WriteZip(t testing.TB, path string, files ...File) string {
	t.Helper()
	r := require.New(t)

	r.NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	out, err := os.Create(path)
	r.NoError(err)
	zw := zip.NewWriter(out)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		r.NoError(err)
		if !isDir(f) {
			_, err = io.WriteString(w, f.Content)
			r.NoError(err)
		}
	}
	r.NoError(zw.Close())
	r.NoError(out.Close())
	return path
}

// WriteTar writes the files, in order, into a tar archive at path.
// The compression is derived from the extension (.tar, .tgz/.tar.gz, .tzst/.tar.zst, .tlz4/.tar.lz4).
func WriteTar(t testing.TB, path string, files ...File) string {
	t.Helper()
	r := require.New(t)

	r.NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	out, err := os.Create(path)
	r.NoError(err)

	var w io.WriteCloser
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tgz"), strings.HasSuffix(lower, ".tar.gz"):
		w = gzip.NewWriter(out)
	case strings.HasSuffix(lower, ".tzst"), strings.HasSuffix(lower, ".tar.zst"):
		w, err = zstd.NewWriter(out)
		r.NoError(err)
	case strings.HasSuffix(lower, ".tlz4"), strings.HasSuffix(lower, ".tar.lz4"):
		w = lz4.NewWriter(out)
	default:
		w = nopWriteCloser{out}
	}

	tw := tar.NewWriter(w)
	for _, f := range files {
		if isDir(f) {
			r.NoError(tw.WriteHeader(&tar.Header{Name: f.Name, Typeflag: tar.TypeDir, Mode: 0o755}))
			continue
		}
		r.NoError(tw.WriteHeader(&tar.Header{Name: f.Name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(f.Content))}))
		_, err := io.WriteString(tw, f.Content)
		r.NoError(err)
	}
	r.NoError(tw.Close())
	r.NoError(w.Close())
	r.NoError(out.Close())
	return path
}

// WriteDir materializes the files below base and returns base.
func WriteDir(t testing.TB, base string, files ...File) string {
	t.Helper()
	r := require.New(t)
	for _, f := range files {
		target := filepath.Join(base, filepath.FromSlash(f.Name))
		if isDir(f) {
			r.NoError(os.MkdirAll(target, 0o755))
			continue
		}
		r.NoError(os.MkdirAll(filepath.Dir(target), 0o755))
		r.NoError(os.WriteFile(target, []byte(f.Content), 0o644))
	}
	return base
}

// ReadTree returns all regular files below base keyed by their slash separated relative path.
func ReadTree(t testing.TB, base string) map[string]string {
	t.Helper()
	r := require.New(t)
	tree := map[string]string{}
	r.NoError(filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	}))
	return tree
}

func isDir(f File) bool {
	return strings.HasSuffix(f.Name, "/")
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
