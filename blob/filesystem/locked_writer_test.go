package filesystem_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"ocm.software/open-component-model/webassets/blob/filesystem"
	"ocm.software/open-component-model/webassets/blob/inmemory"
)

func TestWriteLocked(t *testing.T) {
	t.Run("creates missing target", func(t *testing.T) {
		r := require.New(t)
		target := filepath.Join(t.TempDir(), "index.html")

		result, err := filesystem.WriteLocked(inmemory.NewFromBytes([]byte("<html></html>")), target)
		r.NoError(err)
		r.Equal(filesystem.Written, result)

		data, err := os.ReadFile(target)
		r.NoError(err)
		r.Equal("<html></html>", string(data))
	})

	t.Run("replaces longer existing content", func(t *testing.T) {
		r := require.New(t)
		target := filepath.Join(t.TempDir(), "index.html")
		r.NoError(os.WriteFile(target, []byte(strings.Repeat("x", 128)), 0o644))

		result, err := filesystem.WriteLocked(inmemory.NewFromBytes([]byte("short")), target)
		r.NoError(err)
		r.Equal(filesystem.Written, result)

		data, err := os.ReadFile(target)
		r.NoError(err)
		r.Equal("short", string(data))
	})

	t.Run("missing parent directory fails", func(t *testing.T) {
		r := require.New(t)
		target := filepath.Join(t.TempDir(), "missing", "index.html")

		_, err := filesystem.WriteLocked(inmemory.NewFromBytes([]byte("x")), target)
		r.Error(err)
	})
}

func TestWriteLocked_ConcurrentWritersNeverInterleave(t *testing.T) {
	r := require.New(t)
	target := filepath.Join(t.TempDir(), "style.css")

	const writers = 16
	contents := make([]string, writers)
	for i := range writers {
		contents[i] = strings.Repeat(fmt.Sprintf("writer-%02d;", i), 4096)
	}

	var written atomic.Int32
	var eg errgroup.Group
	for i := range writers {
		eg.Go(func() error {
			result, err := filesystem.WriteLocked(inmemory.NewFromBytes([]byte(contents[i])), target)
			if err != nil {
				return err
			}
			if result == filesystem.Written {
				written.Add(1)
			}
			return nil
		})
	}
	r.NoError(eg.Wait())
	r.GreaterOrEqual(written.Load(), int32(1))

	data, err := os.ReadFile(target)
	r.NoError(err)
	r.Contains(contents, string(data), "target must hold exactly one writer's content")
}

func TestCopyBlobToOSPath(t *testing.T) {
	r := require.New(t)
	target := filepath.Join(t.TempDir(), "favicon.ico")
	r.NoError(os.WriteFile(target, []byte("previous content that is longer"), 0o644))

	r.NoError(filesystem.CopyBlobToOSPath(inmemory.NewFromBytes([]byte("icon")), target))

	data, err := os.ReadFile(target)
	r.NoError(err)
	r.Equal("icon", string(data))
}

func TestGetBlobFromOSPath(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	r.NoError(os.WriteFile(path, []byte("png"), 0o644))

	b, err := filesystem.GetBlobFromOSPath(path)
	r.NoError(err)
	r.Equal(int64(3), b.Size())

	_, err = filesystem.GetBlobFromOSPath(dir)
	r.Error(err)

	_, err = filesystem.GetBlobFromOSPath(filepath.Join(dir, "missing"))
	r.ErrorIs(err, os.ErrNotExist)
}
