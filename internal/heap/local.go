// Package heap reads HDC5 local heaps: the NUL-terminated name storage a
// v1 group's B-tree leaves point into.
package heap

import (
	"fmt"
	"unicode/utf8"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
)

var localHeapSignature = []byte{'H', 'E', 'A', 'P'}

// LocalHeap is a parsed local heap's data segment, addressable by byte
// offset.
type LocalHeap struct {
	DataSize    uint64
	FreeOffset  uint64
	DataAddress uint64
	data        []byte
}

// Read parses the local heap at address.
func Read(r *byteio.Reader, address uint64) (*LocalHeap, error) {
	hr := r.At(int64(address))

	sig, err := hr.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("heap: reading signature at %d: %w", address, err)
	}
	if string(sig) != string(localHeapSignature) {
		return nil, fmt.Errorf("heap: bad signature %q at %d: %w", sig, address, errs.Format)
	}

	version, err := hr.ReadUint8()
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, fmt.Errorf("heap: unsupported version %d: %w", version, errs.Format)
	}
	hr.Skip(3)

	dataSize, err := hr.ReadLength()
	if err != nil {
		return nil, err
	}
	freeOffset, err := hr.ReadLength()
	if err != nil {
		return nil, err
	}
	dataAddr, err := hr.ReadOffset()
	if err != nil {
		return nil, err
	}

	h := &LocalHeap{
		DataSize:    dataSize,
		FreeOffset:  freeOffset,
		DataAddress: dataAddr,
	}

	dr := r.At(int64(dataAddr))
	h.data, err = dr.ReadBytes(int(dataSize))
	if err != nil {
		return nil, fmt.Errorf("heap: reading data segment at %d: %w", dataAddr, err)
	}

	return h, nil
}

// GetString reads a NUL-terminated name at offset and validates it as
// UTF-8.
func (h *LocalHeap) GetString(offset uint64) (string, error) {
	if offset >= uint64(len(h.data)) {
		return "", fmt.Errorf("heap: name offset %d out of range (heap size %d): %w", offset, len(h.data), errs.Format)
	}
	end := offset
	for end < uint64(len(h.data)) && h.data[end] != 0 {
		end++
	}
	s := h.data[offset:end]
	if !utf8.Valid(s) {
		return "", fmt.Errorf("heap: name at offset %d is not valid utf-8: %w", offset, errs.Utf8)
	}
	return string(s), nil
}
