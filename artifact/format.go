package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileFormat represents the representation of a content root.
type FileFormat int

var ErrUnsupportedFormat = errors.New("unsupported format")

const (
	// FormatUnknown represents an unknown format.
	FormatUnknown FileFormat = iota
	// FormatDirectory represents a content root already expanded into a directory.
	FormatDirectory
	// FormatZip represents a ZIP based archive such as a jar.
	FormatZip
	// FormatTAR represents a Tape (TAR) archive.
	FormatTAR
	// FormatTGZ represents a TAR archive compressed with GZip.
	FormatTGZ
	// FormatTZST represents a TAR archive compressed with Zstandard.
	FormatTZST
	// FormatTLZ4 represents a TAR archive compressed with LZ4 frames.
	FormatTLZ4
)

// formats is a list of all formats corresponding to the FileFormat constants.
var formats = [...]string{"unknown", "directory", "zip", "tar", "tgz", "tzst", "tlz4"}

func (f FileFormat) String() string {
	if f < 0 || int(f) >= len(formats) {
		return fmt.Sprintf("FileFormat(%d)", int(f))
	}
	return formats[f]
}

// IsArchive reports whether the format is a packed archive.
func (f FileFormat) IsArchive() bool {
	return f >= FormatZip && f <= FormatTLZ4
}

var (
	zipMagic  = []byte("PK\x03\x04")
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// DetectFormat determines the format of the content root at path.
// Directories are FormatDirectory. Files are classified by their extension and,
// if the extension is not known, by their leading magic bytes. Files that match
// no magic are treated as plain TAR archives.
func DetectFormat(path string) (FileFormat, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("unable to stat content root: %w", err)
	}
	if fi.IsDir() {
		return FormatDirectory, nil
	}
	if !fi.Mode().IsRegular() {
		return FormatUnknown, fmt.Errorf("content root %s is neither a directory nor a regular file: %w", path, ErrUnsupportedFormat)
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTGZ, nil
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tzst"):
		return FormatTZST, nil
	case strings.HasSuffix(lower, ".tar.lz4"), strings.HasSuffix(lower, ".tlz4"):
		return FormatTLZ4, nil
	}
	switch filepath.Ext(lower) {
	case ".jar", ".war", ".zip":
		return FormatZip, nil
	case ".tar":
		return FormatTAR, nil
	}

	return sniffFormat(path)
}

func sniffFormat(path string) (_ FileFormat, err error) {
	file, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("unable to open content root: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	header := make([]byte, 4)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, fmt.Errorf("unable to read content root header: %w", err)
	}
	header = header[:n]

	switch {
	case bytes.HasPrefix(header, zipMagic):
		return FormatZip, nil
	case bytes.HasPrefix(header, gzipMagic):
		return FormatTGZ, nil
	case bytes.HasPrefix(header, zstdMagic):
		return FormatTZST, nil
	case bytes.HasPrefix(header, lz4Magic):
		return FormatTLZ4, nil
	default:
		return FormatTAR, nil
	}
}
