package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"

	"ocm.software/open-component-model/webassets/blob"
)

// WriteResult reports the outcome of WriteLocked.
type WriteResult int

const (
	// Written indicates that the content was copied to the target.
	Written WriteResult = iota
	// Skipped indicates that another writer held the lock on the target and
	// the write was not attempted.
	Skipped
)

func (r WriteResult) String() string {
	switch r {
	case Written:
		return "written"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("WriteResult(%d)", int(r))
	}
}

// WriteLocked writes the content of src to path while holding an exclusive advisory lock
// on the target file.
//
// The lock is attempted without blocking. If another process (or another open handle in
// this process) already holds it, the write is skipped and the existing content is left to
// that writer. This is a best effort single-writer contract: it prevents two writers from
// interleaving their bytes, it does not wait for a concurrent writer to finish.
//
// The target is only truncated after the lock has been acquired so that a losing writer
// never destroys content that is being produced by the lock owner.
func WriteLocked(src blob.ReadOnlyBlob, path string) (result WriteResult, err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return Skipped, fmt.Errorf("failed to open target file %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	locked, err := tryLock(file)
	if err != nil {
		return Skipped, fmt.Errorf("failed to lock target file %s: %w", path, err)
	}
	if !locked {
		return Skipped, nil
	}
	defer func() {
		if uerr := unlock(file); uerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to unlock target file %s: %w", path, uerr))
		}
	}()

	if err := file.Truncate(0); err != nil {
		return Skipped, fmt.Errorf("failed to truncate target file %s: %w", path, err)
	}

	data, err := src.ReadCloser()
	if err != nil {
		return Skipped, fmt.Errorf("failed to get resource data: %w", err)
	}
	defer func() {
		err = errors.Join(err, data.Close())
	}()

	buf := ioBufPool.Get().(*[]byte)
	defer ioBufPool.Put(buf)
	if _, err := io.CopyBuffer(file, data, *buf); err != nil {
		return Skipped, fmt.Errorf("failed to copy resource data to %s: %w", path, err)
	}

	return Written, nil
}
