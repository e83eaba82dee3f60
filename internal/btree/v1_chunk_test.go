package btree

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwhittaker/hdc5/internal/byteio"
)

type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b)) {
		return 0, nil
	}
	n := copy(p, b[off:])
	return n, nil
}

// buildChunkLeaf writes a single-level ("TREE" type 1, level 0) chunk
// B-tree node with two leaf entries, each a 2x2 chunk of 4-byte elements.
func buildChunkLeaf() []byte {
	var buf bytes.Buffer
	buf.WriteString("TREE")
	buf.WriteByte(1) // node type: chunk
	buf.WriteByte(0) // level 0
	binary.Write(&buf, binary.LittleEndian, uint16(2)) // entries used
	binary.Write(&buf, binary.LittleEndian, uint64(0)) // left sibling (undefined)
	binary.Write(&buf, binary.LittleEndian, uint64(0)) // right sibling

	writeKey := func(size, mask uint32, offs []uint64) {
		binary.Write(&buf, binary.LittleEndian, size)
		binary.Write(&buf, binary.LittleEndian, mask)
		for _, o := range offs {
			binary.Write(&buf, binary.LittleEndian, o)
		}
	}

	writeKey(16, 0, []uint64{0, 0, 0})
	binary.Write(&buf, binary.LittleEndian, uint64(1000)) // chunk address 0

	writeKey(16, 0, []uint64{0, 2, 0})
	binary.Write(&buf, binary.LittleEndian, uint64(2000)) // chunk address 1

	writeKey(0, 0, []uint64{2, 4, 0}) // bounding key, no child
	return buf.Bytes()
}

func TestReadChunkIndex(t *testing.T) {
	raw := buildChunkLeaf()
	r := byteio.New(bytesReaderAt(raw), byteio.DefaultConfig())

	idx, err := ReadChunkIndex(r, 0, 2)
	require.NoError(t, err)
	require.Len(t, idx.Entries, 2)
	require.Equal(t, []uint64{0, 0}, idx.Entries[0].Offset)
	require.Equal(t, uint64(1000), idx.Entries[0].Address)
	require.Equal(t, []uint64{0, 2}, idx.Entries[1].Offset)
	require.Equal(t, uint64(2000), idx.Entries[1].Address)
}

func TestReadChunkIndexBadSignature(t *testing.T) {
	raw := append([]byte("XXXX"), make([]byte, 28)...)
	r := byteio.New(bytesReaderAt(raw), byteio.DefaultConfig())
	_, err := ReadChunkIndex(r, 0, 2)
	require.Error(t, err)
}

func TestFindChunk(t *testing.T) {
	idx := &ChunkIndex{
		NDims: 2,
		Entries: []ChunkEntry{
			{Offset: []uint64{0, 0}, Address: 1000},
			{Offset: []uint64{0, 2}, Address: 2000},
		},
	}
	chunkDims := []uint32{2, 2}

	entry := idx.FindChunk([]uint64{1, 3}, chunkDims)
	require.NotNil(t, entry)
	require.Equal(t, uint64(2000), entry.Address)

	require.Nil(t, idx.FindChunk([]uint64{10, 10}, chunkDims))
}
