package hdc5

import (
	"fmt"
	"io"
	"os"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/cache"
	"github.com/mwhittaker/hdc5/internal/object"
	"github.com/mwhittaker/hdc5/internal/superblock"
)

// FileReader owns a seekable container source: a byte reader configured
// from its superblock, an object-header cache, and the root group built
// from the root SymbolTableEntry. Every Group and Dataset derived from it holds a
// reference back to the same FileReader and never outlives it.
type FileReader struct {
	src    io.ReaderAt
	closer io.Closer
	reader *byteio.Reader
	cache  *cache.HeaderCache
	root   *Group
	closed bool
}

// Open parses the superblock and root object header of src and returns a
// FileReader exposing its root group.
func Open(src io.ReaderAt, opts ...OpenOption) (*FileReader, error) {
	o := defaultOpenOptions()
	for _, opt := range opts {
		opt(o)
	}

	sb, err := superblock.Read(src)
	if err != nil {
		return nil, fmt.Errorf("hdc5: reading superblock: %w", err)
	}

	fr := &FileReader{
		src:    src,
		reader: byteio.New(src, sb.ReaderConfig()),
		cache:  cache.New(o.objectCacheSize),
	}

	rootHeader, err := fr.readHeader(sb.RootGroupAddress)
	if err != nil {
		return nil, fmt.Errorf("hdc5: reading root object header: %w", err)
	}
	fr.root = &Group{file: fr, name: "/", header: rootHeader}

	return fr, nil
}

// OpenFile opens path and parses it as a container.
func OpenFile(path string, opts ...OpenOption) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hdc5: opening %s: %w", path, err)
	}
	fr, err := Open(f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	fr.closer = f
	return fr, nil
}

// Close releases the underlying source, if OpenFile opened it.
func (f *FileReader) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// AsGroup returns the root group.
func (f *FileReader) AsGroup() *Group {
	return f.root
}

// readHeader parses the object header at address, consulting and
// populating the object-header cache.
func (f *FileReader) readHeader(address uint64) (*object.Header, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if hdr, ok := f.cache.Get(address); ok {
		return hdr, nil
	}
	hdr, err := object.Read(f.reader, address)
	if err != nil {
		return nil, err
	}
	f.cache.Put(address, hdr)
	return hdr, nil
}
