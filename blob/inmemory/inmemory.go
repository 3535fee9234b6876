// Package inmemory provides a blob.ReadOnlyBlob that is fully held in memory.
package inmemory

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/opencontainers/go-digest"

	"ocm.software/open-component-model/webassets/blob"
)

// Blob is a read-only blob backed by a byte slice.
// The data is loaded from the underlying reader on first access.
type Blob struct {
	mu     sync.Mutex
	reader io.Reader
	data   []byte
	loaded bool
	err    error
	digest digest.Digest
}

var (
	_ blob.ReadOnlyBlob = (*Blob)(nil)
	_ blob.SizeAware    = (*Blob)(nil)
	_ blob.DigestAware  = (*Blob)(nil)
)

// New creates a blob that buffers the given reader on first access.
func New(r io.Reader) *Blob {
	return &Blob{reader: r}
}

// NewFromBytes creates a blob from already available data.
func NewFromBytes(data []byte) *Blob {
	return &Blob{data: data, loaded: true}
}

func (b *Blob) load() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loaded {
		b.data, b.err = io.ReadAll(b.reader)
		if b.err != nil {
			b.err = fmt.Errorf("unable to buffer blob data: %w", b.err)
		}
		b.reader = nil
		b.loaded = true
	}
	return b.data, b.err
}

func (b *Blob) ReadCloser() (io.ReadCloser, error) {
	data, err := b.load()
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *Blob) Size() int64 {
	data, err := b.load()
	if err != nil {
		return blob.SizeUnknown
	}
	return int64(len(data))
}

func (b *Blob) Digest() (string, bool) {
	data, err := b.load()
	if err != nil {
		return "", false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.digest == "" {
		b.digest = digest.FromBytes(data)
	}
	return b.digest.String(), true
}
