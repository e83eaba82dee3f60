// Package byteio provides the little-endian, variable-width binary reads
// HDC5's on-disk structures are built from: the superblock, B-tree nodes,
// object header messages and chunk payloads are all read through a single
// Reader bound to an absolute file offset.
package byteio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mwhittaker/hdc5/internal/errs"
)

// Config carries the address- and length-field widths discovered while
// parsing the superblock, plus the byte order (HDC5 is always
// little-endian, but the field is threaded through so callers never need a
// bare literal).
type Config struct {
	ByteOrder  binary.ByteOrder
	OffsetSize int // bytes used to encode a file address (2, 4, or 8)
	LengthSize int // bytes used to encode a length (2, 4, or 8)
}

// DefaultConfig is usable before the superblock has been parsed: 8-byte
// offsets/lengths, little-endian.
func DefaultConfig() Config {
	return Config{
		ByteOrder:  binary.LittleEndian,
		OffsetSize: 8,
		LengthSize: 8,
	}
}

// Reader reads little-endian integers and exact byte runs from an absolute
// position in a seekable source. It never caches; every read is a fresh
// ReadAt against the underlying source.
type Reader struct {
	src        io.ReaderAt
	order      binary.ByteOrder
	offsetSize int
	lengthSize int
	pos        int64
}

// New creates a Reader positioned at offset 0.
func New(src io.ReaderAt, cfg Config) *Reader {
	return &Reader{
		src:        src,
		order:      cfg.ByteOrder,
		offsetSize: cfg.OffsetSize,
		lengthSize: cfg.LengthSize,
	}
}

// At returns a reader over the same source positioned at an absolute
// offset. The returned reader is independent of r's position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		src:        r.src,
		order:      r.order,
		offsetSize: r.offsetSize,
		lengthSize: r.lengthSize,
		pos:        offset,
	}
}

// WithSizes returns a reader sharing the source and position but with the
// offset/length widths discovered from the superblock.
func (r *Reader) WithSizes(offsetSize, lengthSize int) *Reader {
	cp := *r
	cp.offsetSize = offsetSize
	cp.lengthSize = lengthSize
	return &cp
}

// Pos is the current absolute read position.
func (r *Reader) Pos() int64 { return r.pos }

// OffsetSize is the configured file-address width in bytes.
func (r *Reader) OffsetSize() int { return r.offsetSize }

// LengthSize is the configured length-field width in bytes.
func (r *Reader) LengthSize() int { return r.lengthSize }

// ByteOrder is the configured integer byte order.
func (r *Reader) ByteOrder() binary.ByteOrder { return r.order }

// Skip advances the position by n bytes without reading.
func (r *Reader) Skip(n int64) { r.pos += n }

// Align advances the position to the next multiple of alignment.
func (r *Reader) Align(alignment int64) {
	if alignment <= 1 {
		return
	}
	if rem := r.pos % alignment; rem != 0 {
		r.pos += alignment - rem
	}
}

// ReadBytes reads exactly n bytes at the current position and advances it.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	got, err := r.src.ReadAt(buf, r.pos)
	if err != nil || got < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("byteio: short read at %d (%d bytes): %s: %w", r.pos, n, err, errs.IO)
	}
	r.pos += int64(n)
	return buf, nil
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	got, err := r.src.ReadAt(buf, r.pos)
	if err != nil || got < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("byteio: short peek at %d (%d bytes): %s: %w", r.pos, n, err, errs.IO)
	}
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(b), nil
}

// ReadUintN reads an unsigned integer stored in n bytes (1, 2, 4, or 8).
func (r *Reader) ReadUintN(n int) (uint64, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	return DecodeUint(b, r.order), nil
}

// ReadOffset reads a file address using the configured offset width.
func (r *Reader) ReadOffset() (uint64, error) {
	b, err := r.ReadBytes(r.offsetSize)
	if err != nil {
		return 0, err
	}
	return DecodeUint(b, r.order), nil
}

// ReadLength reads a length value using the configured length width.
func (r *Reader) ReadLength() (uint64, error) {
	b, err := r.ReadBytes(r.lengthSize)
	if err != nil {
		return 0, err
	}
	return DecodeUint(b, r.order), nil
}

// IsUndefinedOffset reports whether offset is the HDC5 "undefined address"
// sentinel (all bits of the configured offset width set).
func (r *Reader) IsUndefinedOffset(offset uint64) bool {
	return offset == undefinedMask(r.offsetSize)
}

// DecodeUint decodes a little/big-endian (per order) unsigned integer of
// arbitrary byte width. Used where a field's width is only known at run
// time (the configured offset/length widths, ReadUintN, the v2 link
// name-length field).
func DecodeUint(buf []byte, order binary.ByteOrder) uint64 {
	switch len(buf) {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	case 8:
		return order.Uint64(buf)
	default:
		var v uint64
		if order == binary.BigEndian {
			for _, b := range buf {
				v = (v << 8) | uint64(b)
			}
			return v
		}
		for i := len(buf) - 1; i >= 0; i-- {
			v = (v << 8) | uint64(buf[i])
		}
		return v
	}
}

func undefinedMask(size int) uint64 {
	if size >= 8 {
		return ^uint64(0)
	}
	return uint64(1)<<(uint(size)*8) - 1
}
