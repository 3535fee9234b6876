// Package blob defines the readable byte source used throughout web asset extraction.
// Archive entries, files on disk, bundled branding resources and rewritten style sheets
// are all handed around as a ReadOnlyBlob, so consumers never need to know where the
// bytes come from.
package blob

import "io"

// SizeUnknown is returned by SizeAware implementations that cannot determine their size upfront.
const SizeUnknown int64 = -1

// ReadOnlyBlob is a source of bytes that can be opened for reading.
// Every call to ReadCloser returns a fresh reader that must be closed by the caller.
type ReadOnlyBlob interface {
	ReadCloser() (io.ReadCloser, error)
}

// SizeAware is implemented by blobs that know their size in bytes.
type SizeAware interface {
	// Size returns the size of the blob or SizeUnknown.
	Size() int64
}

// DigestAware is implemented by blobs that know their content digest.
type DigestAware interface {
	// Digest returns the digest of the blob in the format of an open container digest
	// (e.g. sha256:...). The boolean is false if the digest is not known.
	Digest() (string, bool)
}
