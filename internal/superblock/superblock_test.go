package superblock

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b)) {
		return 0, nil
	}
	n := copy(p, b[off:])
	return n, nil
}

func buildSuperblock(rootAddr uint64) []byte {
	var buf bytes.Buffer
	buf.Write(Signature[:])
	buf.WriteByte(0) // superblock version
	buf.Write([]byte{0, 0, 0, 0})
	buf.WriteByte(8) // offset size
	buf.WriteByte(8) // length size
	buf.WriteByte(0) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(4)) // group leaf k
	binary.Write(&buf, binary.LittleEndian, uint16(8)) // group internal k
	buf.Write(make([]byte, 4))                         // consistency flags

	binary.Write(&buf, binary.LittleEndian, uint64(0))      // base address
	binary.Write(&buf, binary.LittleEndian, ^uint64(0))     // free space info, undefined
	binary.Write(&buf, binary.LittleEndian, uint64(4096))   // EOF address
	binary.Write(&buf, binary.LittleEndian, ^uint64(0))     // driver info address

	binary.Write(&buf, binary.LittleEndian, uint64(0))      // root link name offset
	binary.Write(&buf, binary.LittleEndian, rootAddr)       // root object header address
	binary.Write(&buf, binary.LittleEndian, uint32(0))      // cache type
	buf.Write(make([]byte, 4))                              // reserved
	buf.Write(make([]byte, 16))                             // scratch-pad

	return buf.Bytes()
}

func TestReadSuperblock(t *testing.T) {
	raw := buildSuperblock(0x800)
	sb, err := Read(bytesReaderAt(raw))
	require.NoError(t, err)

	require.Equal(t, uint8(0), sb.Version)
	require.Equal(t, uint8(8), sb.OffsetSize)
	require.Equal(t, uint16(4), sb.GroupLeafNodeK)
	require.Equal(t, uint64(4096), sb.EOFAddress)
	require.Equal(t, uint64(0x800), sb.RootGroupAddress)
}

func TestReadSuperblockBadSignature(t *testing.T) {
	raw := append([]byte("NOTHDF5!"), make([]byte, 40)...)
	_, err := Read(bytesReaderAt(raw))
	require.Error(t, err)
}

func TestReadSuperblockRejectsNonZeroVersion(t *testing.T) {
	raw := buildSuperblock(0x800)
	raw[8] = 1 // superblock version byte
	_, err := Read(bytesReaderAt(raw))
	require.Error(t, err)
}

func TestReaderConfigReflectsWidths(t *testing.T) {
	sb := &SuperBlock{OffsetSize: 4, LengthSize: 4}
	cfg := sb.ReaderConfig()
	require.Equal(t, 4, cfg.OffsetSize)
	require.Equal(t, 4, cfg.LengthSize)
}
