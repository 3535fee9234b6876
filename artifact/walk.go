package artifact

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"ocm.software/open-component-model/webassets/blob"
	"ocm.software/open-component-model/webassets/blob/filesystem"
)

var (
	// ErrInvalidEntry is returned for archive entries that would escape the extraction target.
	ErrInvalidEntry = errors.New("invalid archive entry")
	// ErrRootFolderNotFound is returned when walking a directory content root that does not
	// contain the requested root folder.
	ErrRootFolderNotFound = errors.New("root folder not found in content root")
)

// ContentRoot is a single packed archive or expanded directory of an artifact.
type ContentRoot struct {
	Path string `json:"path"`
}

func (r ContentRoot) String() string {
	return r.Path
}

// Format detects the representation of the content root.
func (r ContentRoot) Format() (FileFormat, error) {
	return DetectFormat(r.Path)
}

// Entry is a file or directory below the root folder of a content root.
type Entry struct {
	// Name is the slash separated name of the entry inside the content root.
	Name string
	// Path is the slash separated path relative to the root folder.
	// It is empty for the root folder itself.
	Path string
	Dir  bool
	// Blob gives access to the content of file entries. For archives that can only be
	// read sequentially it is valid only during the WalkFunc call.
	Blob blob.ReadOnlyBlob
	// OSPath is the location on disk for entries of directory content roots.
	OSPath string
}

// WalkFunc is called for every entry below the root folder.
// Returning an error stops the walk and the error is returned from Walk.
type WalkFunc func(entry Entry) error

// NormalizeRootFolder makes sure the root folder ends with a slash so that
// prefix matching against archive entry names is unambiguous.
func NormalizeRootFolder(rootFolder string) string {
	rootFolder = filepath.ToSlash(rootFolder)
	if strings.HasSuffix(rootFolder, "/") {
		return rootFolder
	}
	return rootFolder + "/"
}

// Walk enumerates all entries of the content root below rootFolder.
// Archive entries are visited in archive order, directory content roots in lexical order.
// A directory content root without rootFolder results in ErrRootFolderNotFound.
func (r ContentRoot) Walk(ctx context.Context, rootFolder string, fn WalkFunc) error {
	format, err := r.Format()
	if err != nil {
		return err
	}
	return r.walk(ctx, format, NormalizeRootFolder(rootFolder), fn)
}

// WalkArchive is like Walk but fails with ErrUnsupportedFormat for directory content roots.
func (r ContentRoot) WalkArchive(ctx context.Context, rootFolder string, fn WalkFunc) error {
	format, err := r.Format()
	if err != nil {
		return err
	}
	if !format.IsArchive() {
		return fmt.Errorf("content root %s has format %s, expected an archive: %w", r.Path, format, ErrUnsupportedFormat)
	}
	return r.walk(ctx, format, NormalizeRootFolder(rootFolder), fn)
}

func (r ContentRoot) walk(ctx context.Context, format FileFormat, prefix string, fn WalkFunc) error {
	switch format {
	case FormatDirectory:
		return walkDirectory(ctx, r.Path, prefix, fn)
	case FormatZip:
		return walkZip(ctx, r.Path, prefix, fn)
	case FormatTAR, FormatTGZ, FormatTZST, FormatTLZ4:
		return walkTAR(ctx, r.Path, format, prefix, fn)
	default:
		return fmt.Errorf("content root %s: %w", r.Path, ErrUnsupportedFormat)
	}
}

// relativeEntryPath strips the root folder prefix from an archive entry name.
// Names relative to the current directory, as written by tar -C dir ., are matched without the leading "./".
// The second return value is false if the entry is not below the root folder.
func relativeEntryPath(name, prefix string) (string, bool, error) {
	name = strings.TrimPrefix(name, "./")
	if !strings.HasPrefix(name, prefix) {
		return "", false, nil
	}
	rel := strings.TrimSuffix(strings.TrimPrefix(name, prefix), "/")
	if rel == "" {
		return "", true, nil
	}
	if path.IsAbs(rel) {
		return "", false, fmt.Errorf("%w: %s is absolute", ErrInvalidEntry, name)
	}
	for _, segment := range strings.Split(rel, "/") {
		if segment == ".." {
			return "", false, fmt.Errorf("%w: %s contains %q", ErrInvalidEntry, name, "..")
		}
	}
	return rel, true, nil
}

func walkZip(ctx context.Context, archivePath, prefix string, fn WalkFunc) (err error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("unable to open zip archive %s: %w", archivePath, err)
	}
	defer func() {
		err = errors.Join(err, reader.Close())
	}()

	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, ok, err := relativeEntryPath(file.Name, prefix)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		entry := Entry{Name: file.Name, Path: rel, Dir: file.FileInfo().IsDir()}
		if !entry.Dir {
			entry.Blob = &zipEntryBlob{file: file}
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return nil
}

type zipEntryBlob struct {
	file *zip.File
}

func (b *zipEntryBlob) ReadCloser() (io.ReadCloser, error) {
	rc, err := b.file.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open zip entry %s: %w", b.file.Name, err)
	}
	return rc, nil
}

func (b *zipEntryBlob) Size() int64 {
	return int64(b.file.UncompressedSize64)
}

func walkTAR(ctx context.Context, archivePath string, format FileFormat, prefix string, fn WalkFunc) (err error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("unable to open tar archive %s: %w", archivePath, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	var source io.Reader = file
	switch format {
	case FormatTGZ:
		var gzipped *gzip.Reader
		if gzipped, err = gzip.NewReader(file); err != nil {
			return fmt.Errorf("unable to create gzip reader for %s: %w", archivePath, err)
		}
		defer func() {
			err = errors.Join(err, gzipped.Close())
		}()
		source = gzipped
	case FormatTZST:
		var decoder *zstd.Decoder
		if decoder, err = zstd.NewReader(file); err != nil {
			return fmt.Errorf("unable to create zstd reader for %s: %w", archivePath, err)
		}
		defer decoder.Close()
		source = decoder
	case FormatTLZ4:
		source = lz4.NewReader(file)
	}

	reader := tar.NewReader(source)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("unable to read tar archive %s: %w", archivePath, err)
		}

		var entry Entry
		switch header.Typeflag {
		case tar.TypeDir:
			entry.Dir = true
		case tar.TypeReg:
		default:
			continue
		}
		rel, ok, err := relativeEntryPath(header.Name, prefix)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		entry.Name, entry.Path = header.Name, rel
		var current *tarEntryBlob
		if !entry.Dir {
			current = &tarEntryBlob{name: header.Name, reader: reader, size: header.Size}
			entry.Blob = current
		}
		err = fn(entry)
		if current != nil {
			current.expire()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// tarEntryBlob reads the current entry of a tar stream.
// It can be opened once and only until the stream moves to the next entry.
type tarEntryBlob struct {
	name     string
	reader   io.Reader
	size     int64
	consumed bool
}

func (b *tarEntryBlob) ReadCloser() (io.ReadCloser, error) {
	if b.consumed || b.reader == nil {
		return nil, fmt.Errorf("tar entry %s can only be read once while it is the current entry", b.name)
	}
	b.consumed = true
	return io.NopCloser(io.LimitReader(b.reader, b.size)), nil
}

func (b *tarEntryBlob) Size() int64 {
	return b.size
}

func (b *tarEntryBlob) expire() {
	b.reader = nil
}

func walkDirectory(ctx context.Context, base, prefix string, fn WalkFunc) error {
	folder := filepath.Join(base, filepath.FromSlash(prefix))
	fi, err := os.Stat(folder)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !fi.IsDir()) {
		return fmt.Errorf("%w: %s", ErrRootFolderNotFound, folder)
	}
	if err != nil {
		return fmt.Errorf("unable to stat root folder %s: %w", folder, err)
	}

	return filepath.WalkDir(folder, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(folder, current)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			rel = ""
		}
		entry := Entry{
			Name:   path.Join(strings.TrimSuffix(prefix, "/"), rel),
			Path:   rel,
			Dir:    d.IsDir(),
			OSPath: current,
		}
		if !entry.Dir {
			if !d.Type().IsRegular() {
				return nil
			}
			b, err := filesystem.GetBlobFromOSPath(current)
			if err != nil {
				return err
			}
			entry.Blob = b
		}
		return fn(entry)
	})
}
