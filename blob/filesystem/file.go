package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"ocm.software/open-component-model/webassets/blob"
)

const DefaultFileIOBufferSize = 1 << 20 // 1 MiB

// ioBufPool is a pool of byte buffers that can be reused for copying content
// between i/o relevant data, such as files.
var ioBufPool = sync.Pool{
	New: func() interface{} {
		// the buffer size should be larger than or equal to 128 KiB
		// for performance considerations.
		// we choose 1 MiB here so there will be less disk I/O.
		buffer := make([]byte, DefaultFileIOBufferSize)
		return &buffer
	},
}

// Blob is a read-only blob backed by a file on the operating system's filesystem.
// The file is opened anew for every call to ReadCloser.
type Blob struct {
	path string
}

var (
	_ blob.ReadOnlyBlob = (*Blob)(nil)
	_ blob.SizeAware    = (*Blob)(nil)
)

// GetBlobFromOSPath returns a read-only blob that reads from a file on the operating system's filesystem.
// The file must exist and must not be a directory.
func GetBlobFromOSPath(path string) (*Blob, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("path %s is a directory", path)
	}
	return &Blob{path: path}, nil
}

//nolint:wrapcheck // os.Open should be propagated as is
func (b *Blob) ReadCloser() (io.ReadCloser, error) {
	return os.Open(b.path)
}

func (b *Blob) Size() int64 {
	fi, err := os.Stat(b.path)
	if err != nil {
		return blob.SizeUnknown
	}
	return fi.Size()
}

// CopyBlobToOSPath copies the content of a blob.ReadOnlyBlob to a local path on the operating system's filesystem.
// The target is created if it does not exist and truncated otherwise.
// No lock is taken on the target, see WriteLocked for the variant that coordinates
// with concurrent writers.
// It uses a buffered I/O operation to improve performance, leveraging the internal ioBufPool.
func CopyBlobToOSPath(src blob.ReadOnlyBlob, path string) (err error) {
	data, err := src.ReadCloser()
	if err != nil {
		return fmt.Errorf("failed to get resource data: %w", err)
	}
	defer func() {
		err = errors.Join(err, data.Close())
	}()

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open target file %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	buf := ioBufPool.Get().(*[]byte)
	defer ioBufPool.Put(buf)
	if _, err := io.CopyBuffer(file, data, *buf); err != nil {
		return fmt.Errorf("failed to copy resource data: %w", err)
	}

	return nil
}
