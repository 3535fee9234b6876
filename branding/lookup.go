package branding

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/klauspost/compress/gzip"
	"github.com/nlepage/go-tarfs"

	"ocm.software/open-component-model/webassets/blob"
	"ocm.software/open-component-model/webassets/blob/inmemory"
)

// Lookup gives access to the bundled branding namespace shipped with the tool.
// Keys are override keys (a protected file name or a module key) relative to the
// branding folder.
type Lookup interface {
	Exists(key string) bool
	Open(key string) (blob.ReadOnlyBlob, error)
}

// NoLookup is a Lookup without any bundled branding.
var NoLookup Lookup = noLookup{}

type noLookup struct{}

func (noLookup) Exists(string) bool { return false }

func (noLookup) Open(key string) (blob.ReadOnlyBlob, error) {
	return nil, fmt.Errorf("no bundled branding for %s: %w", key, fs.ErrNotExist)
}

// FSLookup resolves keys below Folder of an fs.FS, e.g. an embed.FS compiled into the binary.
type FSLookup struct {
	FS     fs.FS
	Folder string
}

var _ Lookup = (*FSLookup)(nil)

// NewFSLookup creates a lookup on fsys using the default BrandingFolder.
func NewFSLookup(fsys fs.FS) *FSLookup {
	return &FSLookup{FS: fsys, Folder: BrandingFolder}
}

func (l *FSLookup) name(key string) string {
	return path.Join(l.Folder, key)
}

func (l *FSLookup) Exists(key string) bool {
	fi, err := fs.Stat(l.FS, l.name(key))
	return err == nil && !fi.IsDir()
}

func (l *FSLookup) Open(key string) (blob.ReadOnlyBlob, error) {
	data, err := fs.ReadFile(l.FS, l.name(key))
	if err != nil {
		return nil, fmt.Errorf("unable to read bundled branding %s: %w", key, err)
	}
	return inmemory.NewFromBytes(data), nil
}

// NewTarLookup loads a tar (optionally gzip compressed) branding bundle from path.
// The bundle is held in memory, the file is not kept open.
func NewTarLookup(bundle string) (*FSLookup, error) {
	raw, err := os.ReadFile(bundle)
	if err != nil {
		return nil, fmt.Errorf("unable to read branding bundle: %w", err)
	}

	data := raw
	if len(raw) >= 2 && raw[0] == 0x1F && raw[1] == 0x8B {
		gz, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for branding bundle: %w", err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(gz); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to decompress branding bundle: %w", err), gz.Close())
		}
		if err := gz.Close(); err != nil {
			return nil, fmt.Errorf("failed to decompress branding bundle: %w", err)
		}
		data = buf.Bytes()
	}

	fsys, err := tarfs.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to create tarfs from branding bundle %s: %w", bundle, err)
	}
	return NewFSLookup(fsys), nil
}

// NewDirLookup exposes a directory on disk as bundled branding namespace.
func NewDirLookup(dir string) *FSLookup {
	return NewFSLookup(os.DirFS(dir))
}
