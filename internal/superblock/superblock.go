// Package superblock parses the HDC5 superblock: the fixed preamble at the
// front of every container that locates the root group and establishes the
// address/length field widths used by every other on-disk structure.
//
// Only superblock version 0 is in scope (spec Non-goals: "superblock
// versions other than 0").
package superblock

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
)

// Signature is the fixed 8-byte magic at file offset 0.
var Signature = [8]byte{0x89, 'H', 'D', 'F', 0x0D, 0x0A, 0x1A, 0x0A}

// SuperBlock is the parsed version-0 preamble plus the embedded root
// symbol-table entry (spec §3 SuperBlock, §6.1).
type SuperBlock struct {
	Version    uint8
	OffsetSize uint8
	LengthSize uint8

	GroupLeafNodeK     uint16
	GroupInternalNodeK uint16

	BaseAddress uint64
	EOFAddress  uint64

	// RootGroupAddress is the root object header address, read from the
	// embedded root SymbolTableEntry's object_header_address field. The
	// root group is parsed like any other object from this address.
	RootGroupAddress uint64
}

// ReaderConfig returns a byteio.Config derived from this superblock, for
// constructing the Reader every subsequent parse uses.
func (sb *SuperBlock) ReaderConfig() byteio.Config {
	cfg := byteio.DefaultConfig()
	cfg.OffsetSize = int(sb.OffsetSize)
	cfg.LengthSize = int(sb.LengthSize)
	return cfg
}

// Read parses the superblock starting at file offset 0.
func Read(src io.ReaderAt) (*SuperBlock, error) {
	sig := make([]byte, 8)
	if _, err := src.ReadAt(sig, 0); err != nil {
		return nil, fmt.Errorf("hdc5: reading superblock signature: %w", errs.IO)
	}
	if !bytes.Equal(sig, Signature[:]) {
		return nil, fmt.Errorf("hdc5: bad superblock signature: %w", errs.Format)
	}

	r := byteio.New(src, byteio.DefaultConfig())
	r.Skip(8)

	version, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, fmt.Errorf("hdc5: unsupported superblock version %d: %w", version, errs.Format)
	}

	r.Skip(3) // free-space storage version, root-group-symtab-entry version, reserved
	r.Skip(1) // shared header message format version

	offsetSize, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	lengthSize, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if offsetSize != 8 || lengthSize != 8 {
		return nil, fmt.Errorf("hdc5: offset/length size must be 8, got %d/%d: %w", offsetSize, lengthSize, errs.Format)
	}

	r.Skip(1) // reserved

	groupLeafK, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	groupInternalK, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	r.Skip(4) // file consistency flags

	sb := &SuperBlock{
		Version:            version,
		OffsetSize:         offsetSize,
		LengthSize:         lengthSize,
		GroupLeafNodeK:     groupLeafK,
		GroupInternalNodeK: groupInternalK,
	}

	r = r.WithSizes(int(offsetSize), int(lengthSize))

	base, err := r.ReadOffset()
	if err != nil {
		return nil, err
	}
	sb.BaseAddress = base

	if _, err := r.ReadOffset(); err != nil { // free-space info address, unused
		return nil, err
	}

	eof, err := r.ReadOffset()
	if err != nil {
		return nil, err
	}
	sb.EOFAddress = eof

	if _, err := r.ReadOffset(); err != nil { // driver info block address, unused
		return nil, err
	}

	// Embedded root SymbolTableEntry (40 bytes, spec §3/§6.1).
	if _, err := r.ReadOffset(); err != nil { // link name offset, always 0 for the root
		return nil, err
	}
	rootAddr, err := r.ReadOffset()
	if err != nil {
		return nil, err
	}
	sb.RootGroupAddress = rootAddr

	if _, err := r.ReadUint32(); err != nil { // cache_type, unused: root is parsed like any other object
		return nil, err
	}
	r.Skip(4)  // reserved
	r.Skip(16) // scratch-pad

	return sb, nil
}
